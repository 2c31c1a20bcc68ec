// Command pixart creates, edits, renders and converts pixel-art documents.
//
// Usage:
//
//	pixart [-config file] [-debug] <command> [arguments]
//
// Commands:
//
//	new     create a blank document
//	render  write the composite as a PNG
//	gif     write every frame as an animated GIF
//	pdf     write every frame as one PDF page
//	import  add an image file as a new layer
//	draw    replay a script of tool events
//	play    run playback and write each displayed frame
//	watch   re-render a document whenever it changes
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"github.com/gogpu/pixart"
	"github.com/gogpu/pixart/config"
)

type command struct {
	name  string
	usage string
	run   func(env *env, args []string) error
}

var commands = []command{
	{"new", "new -o doc.json [-w width] [-h height]", runNew},
	{"render", "render doc.json -o out.png [-scale n] [-grid]", runRender},
	{"gif", "gif doc.json -o out.gif [-scale n]", runGIF},
	{"pdf", "pdf doc.json -o out.pdf [-scale n]", runPDF},
	{"import", "import doc.json image [-o out.json]", runImport},
	{"draw", "draw doc.json script.txt [-o out.json]", runDraw},
	{"play", "play doc.json -dir frames/ [-for 2s] [-onion]", runPlay},
	{"watch", "watch doc.json -o out.png [-scale n]", runWatch},
}

// env is what every command receives.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

// errUsage reports bad command-line arguments.
var errUsage = errors.New("usage")

func main() {
	var (
		configPath = flag.String("config", "pixart.toml", "configuration file")
		debug      = flag.Bool("debug", false, "development logging at debug level")
	)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	l, err := newLogger(cfg.Log, *debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer l.Sync() //nolint:errcheck
	pixart.SetLogger(slog.New(zapslog.NewHandler(l.Core())))

	name, args := flag.Arg(0), flag.Args()[1:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		err := c.run(&env{cfg: cfg, log: l}, args)
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "usage: pixart %s\n", c.usage)
			os.Exit(2)
		}
		if err != nil {
			l.Fatal(name, zap.Error(err))
		}
		return
	}
	fmt.Fprintf(os.Stderr, "pixart: unknown command %q\n", name)
	usage()
	os.Exit(2)
}

func newLogger(lc config.LogConfig, debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development || debug {
		zc = zap.NewDevelopmentConfig()
	}
	lvl, err := lc.ZapLevel()
	if err != nil {
		return nil, err
	}
	if debug {
		lvl = zap.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pixart [-config file] [-debug] <command> [arguments]")
	fmt.Fprintln(os.Stderr, "\ncommands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %s\n", c.usage)
	}
	fmt.Fprintln(os.Stderr, "\nflags:")
	flag.PrintDefaults()
}
