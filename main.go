package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/snowjak88/ray2/pkg/config"
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/renderer"
	"github.com/snowjak88/ray2/pkg/scene"
)

var CLI struct {
	Render RenderCmd `cmd:"" default:"withargs" help:"Render a scene to a PNG file"`
	Scenes ScenesCmd `cmd:"" help:"List the built-in scenes"`
}

type RenderCmd struct {
	Config  string `short:"c" type:"existingfile" help:"YAML render configuration"`
	Scene   string `short:"s" help:"Scene to render, overriding the configuration"`
	Out     string `short:"o" help:"Output PNG path, overriding the configuration"`
	Width   int    `help:"Image width in pixels"`
	Height  int    `help:"Image height in pixels"`
	Workers int    `short:"w" help:"Number of render workers"`
	Photons bool   `help:"Build a photon map before rendering"`
}

// loadConfig reads the configuration file, if any, and applies command line overrides
func (c RenderCmd) loadConfig() (*config.RenderConfig, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.LoadFromFile(c.Config, config.LoadOptions{ResolvePaths: true})
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.Scene != "" {
		cfg.Scene = c.Scene
	}
	if c.Out != "" {
		cfg.Output = c.Out
	}
	if c.Width > 0 {
		cfg.Width = c.Width
	}
	if c.Height > 0 {
		cfg.Height = c.Height
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.Photons {
		cfg.PhotonMap.Enabled = true
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration:\n%s", config.FormatValidationErrors(errs))
	}
	return cfg, nil
}

func (c RenderCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return render(ctx, cfg, core.NewDefaultLogger())
}

func render(ctx context.Context, cfg *config.RenderConfig, logger core.Logger) error {
	s, err := scene.New(cfg.Scene, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	logger.Printf("Rendering %s (%dx%d) with %d workers\n", s.Info.Name, cfg.Width, cfg.Height, cfg.Workers)

	if err := s.Prepare(ctx, cfg, logger); err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	sink := renderer.NewPNGSink(cfg.Width, cfg.Height, cfg.Output)
	stats, err := renderer.NewRenderer(s.World, sink, cfg.RendererConfig(), logger).Render(ctx)
	if err != nil {
		return err
	}
	if stats.FailedTasks > 0 {
		logger.Printf("Warning: %d tasks failed\n", stats.FailedTasks)
	}
	logger.Printf("Render saved as %s\n", cfg.Output)
	return nil
}

type ScenesCmd struct{}

func (ScenesCmd) Run() error {
	for _, info := range scene.List() {
		fmt.Printf("%-10s %s\n", info.ID, info.Description)
	}
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ray2"),
		kong.Description("A recursive ray tracer"),
	)
	if err := ctx.Run(); err != nil {
		log.Fatal(err)
	}
}
