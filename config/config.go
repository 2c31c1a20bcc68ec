// Package config loads editor settings from a TOML file.
//
// A missing file is not an error: every setting has a default, and a file
// only needs to name the settings it changes.
//
//	[canvas]
//	width = 64
//	height = 64
//
//	[brush]
//	size = 3
//	shape = "circle"
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/gogpu/pixart"
	"github.com/gogpu/pixart/anim"
	"github.com/gogpu/pixart/history"
	"github.com/gogpu/pixart/project"
	"github.com/gogpu/pixart/viewport"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("config: invalid setting")

// CanvasConfig is the [canvas] section: the size of new documents and the
// display size of one logical pixel.
type CanvasConfig struct {
	Width     int `toml:"width"`
	Height    int `toml:"height"`
	PixelSize int `toml:"pixel_size"`
}

// PaletteConfig is the [palette] section, hex colors in display order.
type PaletteConfig struct {
	Colors []string `toml:"colors"`
}

// BrushConfig is the [brush] section: initial brush size, shape and color.
type BrushConfig struct {
	Size  int    `toml:"size"`
	Shape string `toml:"shape"`
	Color string `toml:"color"`
}

// FillConfig is the [fill] section.
type FillConfig struct {
	Tolerance int `toml:"tolerance"`
}

// HistoryConfig is the [history] section; MaxEntries caps the undo stack.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// AnimationConfig is the [animation] section: the duration of new frames
// and onion skinning during playback.
type AnimationConfig struct {
	FrameDurationMS int     `toml:"frame_duration_ms"`
	OnionSkin       bool    `toml:"onion_skin"`
	OnionOpacity    float64 `toml:"onion_opacity"`
	OnionFrames     int     `toml:"onion_frames"`
}

// FrameDuration returns the duration given to new frames.
func (a AnimationConfig) FrameDuration() time.Duration {
	return time.Duration(a.FrameDurationMS) * time.Millisecond
}

// Onion returns the onion-skin settings for an anim.Player.
func (a AnimationConfig) Onion() anim.OnionSettings {
	return anim.OnionSettings{
		Enabled: a.OnionSkin,
		Opacity: a.OnionOpacity,
		Frames:  a.OnionFrames,
	}
}

// ImportConfig is the [import] section.
type ImportConfig struct {
	// Scaler is one of nearest, approxbilinear, bilinear, catmullrom.
	Scaler string `toml:"scaler"`
}

// LogConfig is the [log] section, read by the command-line tool.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// ZapLevel parses Level.
func (l LogConfig) ZapLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(l.Level)
}

// Config holds every editor setting.
type Config struct {
	Canvas    CanvasConfig    `toml:"canvas"`
	Palette   PaletteConfig   `toml:"palette"`
	Brush     BrushConfig     `toml:"brush"`
	Fill      FillConfig      `toml:"fill"`
	History   HistoryConfig   `toml:"history"`
	Animation AnimationConfig `toml:"animation"`
	Import    ImportConfig    `toml:"import"`
	Log       LogConfig       `toml:"log"`
}

// Default returns the built-in settings.
func Default() *Config {
	palette := make([]string, 0, 10)
	for _, c := range pixart.DefaultPalette() {
		palette = append(palette, c.Hex())
	}
	return &Config{
		Canvas: CanvasConfig{
			Width:     32,
			Height:    32,
			PixelSize: viewport.DefaultPixelSize,
		},
		Palette: PaletteConfig{Colors: palette},
		Brush: BrushConfig{
			Size:  1,
			Shape: pixart.ShapeSquare.String(),
			Color: pixart.Black.Hex(),
		},
		History: HistoryConfig{MaxEntries: history.DefaultMaxEntries},
		Animation: AnimationConfig{
			FrameDurationMS: int(pixart.DefaultFrameDuration / time.Millisecond),
			OnionOpacity:    anim.DefaultOnionSettings().Opacity,
			OnionFrames:     anim.DefaultOnionSettings().Frames,
		},
		Import: ImportConfig{Scaler: "nearest"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result. A missing
// file yields the defaults. Unknown keys are logged and ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	for _, k := range md.Undecoded() {
		pixart.Logger().Warn("unknown config key", "path", path, "key", k.String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first impossible setting.
func (c *Config) Validate() error {
	var problems []string
	bad := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 ||
		c.Canvas.Width > project.MaxDimension || c.Canvas.Height > project.MaxDimension {
		bad("canvas size %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.PixelSize < 1 {
		bad("canvas.pixel_size %d", c.Canvas.PixelSize)
	}
	for i, s := range c.Palette.Colors {
		if _, err := pixart.ParseHex(s); err != nil {
			bad("palette.colors[%d] %q", i, s)
		}
	}
	if c.Brush.Size < 1 {
		bad("brush.size %d", c.Brush.Size)
	}
	if _, err := pixart.ParseBrushShape(c.Brush.Shape); err != nil {
		bad("brush.shape %q", c.Brush.Shape)
	}
	if _, err := pixart.ParseHex(c.Brush.Color); err != nil {
		bad("brush.color %q", c.Brush.Color)
	}
	if c.Fill.Tolerance < 0 || c.Fill.Tolerance > 255 {
		bad("fill.tolerance %d", c.Fill.Tolerance)
	}
	if c.History.MaxEntries < 1 {
		bad("history.max_entries %d", c.History.MaxEntries)
	}
	if c.Animation.FrameDurationMS <= 0 {
		bad("animation.frame_duration_ms %d", c.Animation.FrameDurationMS)
	}
	if c.Animation.OnionOpacity < 0 || c.Animation.OnionOpacity > 1 {
		bad("animation.onion_opacity %v", c.Animation.OnionOpacity)
	}
	if c.Animation.OnionFrames < 0 {
		bad("animation.onion_frames %d", c.Animation.OnionFrames)
	}
	if _, err := project.ScalerByName(c.Import.Scaler); err != nil {
		bad("import.scaler %q", c.Import.Scaler)
	}
	if _, err := c.Log.ZapLevel(); err != nil {
		bad("log.level %q", c.Log.Level)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, ", "))
	}
	return nil
}

// DocumentOptions translates the palette, brush, fill and animation
// settings. c must be valid.
func (c *Config) DocumentOptions() []pixart.DocumentOption {
	palette := make([]pixart.Color, 0, len(c.Palette.Colors))
	for _, s := range c.Palette.Colors {
		palette = append(palette, pixart.Hex(s))
	}
	shape, _ := pixart.ParseBrushShape(c.Brush.Shape)
	return []pixart.DocumentOption{
		pixart.WithPalette(palette),
		pixart.WithBrush(c.Brush.Size, shape),
		pixart.WithActiveColor(pixart.Hex(c.Brush.Color)),
		pixart.WithFillTolerance(c.Fill.Tolerance),
		pixart.WithFrameDuration(c.Animation.FrameDuration()),
	}
}

// NewDocument creates a blank document with the configured canvas size
// and settings.
func (c *Config) NewDocument() *pixart.Document {
	return pixart.NewDocument(c.Canvas.Width, c.Canvas.Height, c.DocumentOptions()...)
}
