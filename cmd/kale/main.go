// Command kale renders a YAML edit script to PNG or PDF.
//
// Usage:
//
//	kale [-script edits.yaml] [-output out.png] [-format png|pdf] [-v]
//
// Without -script the built-in demo is rendered.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/backend"
	_ "github.com/sunjay/kale/backend/pdf"
	_ "github.com/sunjay/kale/backend/raster"
	"github.com/sunjay/kale/displaylist"
	"github.com/sunjay/kale/geometry"
	"github.com/sunjay/kale/render"
	"github.com/sunjay/kale/text"
)

//go:embed demo.yaml
var demoScript []byte

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("kale: %v", err)
	}
}

type config struct {
	script    string
	output    string
	format    string
	width     int
	height    int
	scale     float64
	tolerance float64
	verbose   bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var c config
	fs := flag.NewFlagSet("kale", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.script, "script", "", "YAML edit script (default: built-in demo)")
	fs.StringVar(&c.output, "output", "kale.png", "output file")
	fs.StringVar(&c.format, "format", "", "output format: "+strings.Join(backend.Available(), ", ")+" (default: from -output extension)")
	fs.IntVar(&c.width, "width", 0, "frame width, overrides the script")
	fs.IntVar(&c.height, "height", 0, "frame height, overrides the script")
	fs.Float64Var(&c.scale, "scale", 1, "device units per surface unit")
	fs.Float64Var(&c.tolerance, "tolerance", geometry.DefaultTolerance, "arc flattening tolerance")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if c.format == "" {
		c.format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.output)), ".")
	}
	return c, nil
}

func run(args []string, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	kale.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer kale.SetLogger(nil)

	script, err := loadScript(cfg.script)
	if err != nil {
		return err
	}
	cmds, err := script.Commands()
	if err != nil {
		return err
	}

	bg := kale.White
	if script.Background != "" {
		if bg, err = parseColor(script.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	width, height := pick(cfg.width, script.Width, 640), pick(cfg.height, script.Height, 480)

	store := displaylist.NewStore()
	queue := displaylist.NewQueue()
	queue.Submit(cmds...)
	queue.Drain(store)
	for _, id := range store.IDs() {
		if err := store.Surface(id).Validate(); err != nil {
			return fmt.Errorf("surface %d: %w", id, err)
		}
	}

	measurer, err := text.NewMeasurer()
	if err != nil {
		return err
	}
	out, err := backend.New(cfg.format, backend.Config{
		Width:  width,
		Height: height,
		Scale:  cfg.scale,
		Fonts:  measurer,
	})
	if err != nil {
		return err
	}

	compiler := geometry.NewCompiler(
		geometry.WithMeasurer(measurer),
		geometry.WithTolerance(cfg.tolerance),
	)
	comp := render.NewComposer(render.NewCache(store, compiler), out, render.WithBackground(bg))
	if err := comp.Render(context.Background()); err != nil {
		return err
	}

	if err := writeOutput(cfg.output, out); err != nil {
		return err
	}
	f := comp.LastFrame()
	kale.Logger().Info("rendered",
		slog.String("output", cfg.output),
		slog.Int("surfaces", f.Surfaces),
		slog.Int("strokes", f.Strokes),
		slog.Int("fills", f.Fills),
		slog.Duration("duration", f.Duration))
	return nil
}

func loadScript(path string) (*Script, error) {
	if path == "" {
		return ParseScript(bytes.NewReader(demoScript))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseScript(f)
}

func writeOutput(path string, out backend.Output) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return out.Encode(f)
}

// pick returns the first positive value.
func pick(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
