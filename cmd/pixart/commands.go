package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gogpu/pixart/anim"
	"github.com/gogpu/pixart/editor"
	"github.com/gogpu/pixart/internal/watch"
	"github.com/gogpu/pixart/project"
	"github.com/gogpu/pixart/render"
)

// parseArgs parses fs allowing flags before, between and after positional
// arguments, and checks the number of positional arguments.
func parseArgs(fs *flag.FlagSet, args []string, want int) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, errUsage
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
	if len(pos) != want {
		return nil, errUsage
	}
	return pos, nil
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func runNew(e *env, args []string) error {
	fs := newFlagSet("new")
	out := fs.String("o", "", "output document")
	w := fs.Int("w", e.cfg.Canvas.Width, "canvas width")
	h := fs.Int("h", e.cfg.Canvas.Height, "canvas height")
	if _, err := parseArgs(fs, args, 0); err != nil || *out == "" {
		return errUsage
	}
	if *w <= 0 || *h <= 0 || *w > project.MaxDimension || *h > project.MaxDimension {
		return fmt.Errorf("canvas size %dx%d out of range", *w, *h)
	}

	cfg := *e.cfg
	cfg.Canvas.Width, cfg.Canvas.Height = *w, *h
	doc := cfg.NewDocument()
	if err := project.Save(*out, doc); err != nil {
		return err
	}
	e.log.Info("document created", zap.String("path", *out), zap.Int("width", *w), zap.Int("height", *h))
	return nil
}

func runRender(e *env, args []string) error {
	fs := newFlagSet("render")
	out := fs.String("o", "", "output PNG")
	scale := fs.Int("scale", 1, "magnification")
	grid := fs.Bool("grid", false, "draw the pixel grid")
	pos, err := parseArgs(fs, args, 1)
	if err != nil || *out == "" {
		return errUsage
	}
	return renderFile(e, pos[0], *out, render.Renderer{PixelSize: *scale, Grid: *grid})
}

func renderFile(e *env, in, out string, r render.Renderer) error {
	doc, err := project.Load(in)
	if err != nil {
		return err
	}
	img := r.Present(doc, nil)
	f, err := os.Create(filepath.Clean(out))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	e.log.Info("rendered", zap.String("path", out), zap.Stringer("size", img.Bounds().Size()))
	return nil
}

func runGIF(e *env, args []string) error {
	fs := newFlagSet("gif")
	out := fs.String("o", "", "output GIF")
	scale := fs.Int("scale", 1, "magnification")
	pos, err := parseArgs(fs, args, 1)
	if err != nil || *out == "" {
		return errUsage
	}
	doc, err := project.Load(pos[0])
	if err != nil {
		return err
	}
	if err := project.SaveGIF(*out, doc, *scale); err != nil {
		return err
	}
	e.log.Info("gif written", zap.String("path", *out), zap.Int("frames", doc.FrameCount()))
	return nil
}

func runPDF(e *env, args []string) error {
	fs := newFlagSet("pdf")
	out := fs.String("o", "", "output PDF")
	scale := fs.Int("scale", 8, "magnification")
	pos, err := parseArgs(fs, args, 1)
	if err != nil || *out == "" {
		return errUsage
	}
	doc, err := project.Load(pos[0])
	if err != nil {
		return err
	}
	if err := project.SavePDF(*out, doc, *scale); err != nil {
		return err
	}
	e.log.Info("pdf written", zap.String("path", *out), zap.Int("pages", doc.FrameCount()))
	return nil
}

func runImport(e *env, args []string) error {
	fs := newFlagSet("import")
	out := fs.String("o", "", "output document (default: overwrite input)")
	pos, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	doc, err := project.Load(pos[0])
	if err != nil {
		return err
	}
	s := editor.New(doc, editor.OptionsFromConfig(e.cfg, nil))

	f, err := os.Open(filepath.Clean(pos[1]))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := s.Import(f); err != nil {
		return fmt.Errorf("import %s: %w", pos[1], err)
	}
	return project.Save(outPath(*out, pos[0]), doc)
}

func runDraw(e *env, args []string) error {
	fs := newFlagSet("draw")
	out := fs.String("o", "", "output document (default: overwrite input)")
	pos, err := parseArgs(fs, args, 2)
	if err != nil {
		return err
	}
	doc, err := project.Load(pos[0])
	if err != nil {
		return err
	}
	f, err := os.Open(filepath.Clean(pos[1]))
	if err != nil {
		return err
	}
	steps, err := parseScript(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	opts := editor.OptionsFromConfig(e.cfg, nil)
	opts.PixelSize = 1 // script coordinates are logical pixels
	s := editor.New(doc, opts)
	if err := runScript(s, steps); err != nil {
		return err
	}
	doc.CaptureFrame()
	e.log.Info("script applied", zap.Int("steps", len(steps)))
	return project.Save(outPath(*out, pos[0]), doc)
}

func outPath(out, in string) string {
	if out != "" {
		return out
	}
	return in
}

func runPlay(e *env, args []string) error {
	fs := newFlagSet("play")
	dir := fs.String("dir", "", "directory for frame PNGs")
	dur := fs.Duration("for", 2*time.Second, "how long to play")
	onion := fs.Bool("onion", e.cfg.Animation.OnionSkin, "draw onion-skin ghosts")
	pos, err := parseArgs(fs, args, 1)
	if err != nil || *dir == "" {
		return errUsage
	}
	doc, err := project.Load(pos[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*dir, 0o750); err != nil {
		return err
	}

	loop := anim.NewLoop()
	opts := editor.OptionsFromConfig(e.cfg, loop)
	opts.Onion.Enabled = *onion
	s := editor.New(doc, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *dur)
	defer cancel()

	shown := 0
	var writeErr error
	s.Player.OnFrame = func(i int) {
		if writeErr != nil || !s.Player.Playing() {
			return
		}
		shown++
		name := filepath.Join(*dir, fmt.Sprintf("frame-%04d.png", shown))
		if writeErr = writePNG(name, s); writeErr != nil {
			cancel()
			return
		}
		e.log.Debug("frame shown", zap.Int("frame", i), zap.String("path", name))
	}
	loop.Post(s.Play)
	_ = loop.Run(ctx)
	s.Player.OnFrame = nil
	s.Stop()

	if writeErr != nil {
		return writeErr
	}
	e.log.Info("playback finished", zap.Int("shown", shown), zap.Duration("for", *dur))
	return nil
}

func writePNG(name string, s *editor.Session) error {
	f, err := os.Create(filepath.Clean(name))
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.Present()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func runWatch(e *env, args []string) error {
	fs := newFlagSet("watch")
	out := fs.String("o", "", "output PNG")
	scale := fs.Int("scale", 1, "magnification")
	pos, err := parseArgs(fs, args, 1)
	if err != nil || *out == "" {
		return errUsage
	}
	in := pos[0]
	r := render.Renderer{PixelSize: *scale}

	if err := renderFile(e, in, *out, r); err != nil {
		e.log.Warn("initial render", zap.Error(err))
	}

	w, err := watch.New(watch.DefaultDelay, func(path string) {
		if err := renderFile(e, path, *out, r); err != nil {
			e.log.Warn("render", zap.String("path", path), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	if err := w.Add(in); err != nil {
		_ = w.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	e.log.Info("watching", zap.String("path", in), zap.String("output", *out))
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
