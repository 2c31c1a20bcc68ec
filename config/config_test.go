package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/gogpu/pixart"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixart.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Canvas != def.Canvas || cfg.Brush != def.Brush || cfg.Animation != def.Animation {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
	if err := def.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
	if len(def.Palette.Colors) != 10 || def.Palette.Colors[2] != "#FF0000" {
		t.Errorf("default palette = %v", def.Palette.Colors)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[canvas]
width = 8
height = 4

[palette]
colors = ["#112233", "#445566"]

[brush]
size = 3
shape = "circle"
color = "#FF00FF"

[fill]
tolerance = 12

[animation]
frame_duration_ms = 40
onion_skin = true

[import]
scaler = "bilinear"

[log]
level = "debug"
development = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.Width != 8 || cfg.Canvas.Height != 4 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Canvas.PixelSize != Default().Canvas.PixelSize {
		t.Errorf("unset pixel_size = %d, want default", cfg.Canvas.PixelSize)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("unset max_entries = %d, want 50", cfg.History.MaxEntries)
	}
	if lvl, _ := cfg.Log.ZapLevel(); lvl != zapcore.DebugLevel || !cfg.Log.Development {
		t.Errorf("log = %+v", cfg.Log)
	}
	if on := cfg.Animation.Onion(); !on.Enabled || on.Opacity != 0.3 || on.Frames != 1 {
		t.Errorf("Onion() = %+v", on)
	}

	doc := cfg.NewDocument()
	if doc.Width() != 8 || doc.Height() != 4 {
		t.Errorf("document size = %dx%d", doc.Width(), doc.Height())
	}
	if doc.BrushSize() != 3 || doc.BrushShape() != pixart.ShapeCircle {
		t.Errorf("brush = %d %v", doc.BrushSize(), doc.BrushShape())
	}
	if doc.ActiveColor() != pixart.Hex("#FF00FF") || doc.FillTolerance() != 12 {
		t.Errorf("color = %v, tolerance = %d", doc.ActiveColor(), doc.FillTolerance())
	}
	if p := doc.Palette(); len(p) != 2 || p[1] != pixart.Hex("#445566") {
		t.Errorf("palette = %v", p)
	}
	if doc.FrameDuration() != 40*time.Millisecond || doc.Frame(0).Duration != 40*time.Millisecond {
		t.Errorf("frame duration = %v", doc.FrameDuration())
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero width", "[canvas]\nwidth = 0"},
		{"huge canvas", "[canvas]\nheight = 100000"},
		{"pixel size", "[canvas]\npixel_size = 0"},
		{"palette color", "[palette]\ncolors = [\"#12\"]"},
		{"brush size", "[brush]\nsize = 0"},
		{"brush shape", "[brush]\nshape = \"star\""},
		{"brush color", "[brush]\ncolor = \"red\""},
		{"tolerance", "[fill]\ntolerance = 256"},
		{"history", "[history]\nmax_entries = 0"},
		{"frame duration", "[animation]\nframe_duration_ms = -5"},
		{"onion opacity", "[animation]\nonion_opacity = 1.5"},
		{"onion frames", "[animation]\nonion_frames = -1"},
		{"scaler", "[import]\nscaler = \"lanczos\""},
		{"log level", "[log]\nlevel = \"loud\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := Load(writeConfig(t, "[canvas\nwidth = 3"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want a parse error", err)
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[canvas]\nwidth = 5\ncolour = 3\n\n[extra]\nx = 1"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.Width != 5 {
		t.Errorf("width = %d, want 5", cfg.Canvas.Width)
	}
}
