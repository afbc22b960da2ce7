// Command rbxvmf converts Roblox RBXLX place files into Valve Map Format
// maps and exports the materials they use.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/rbxvmf/internal/config"
	"github.com/Faultbox/rbxvmf/internal/convert"
	"github.com/Faultbox/rbxvmf/internal/logger"
	"github.com/Faultbox/rbxvmf/internal/pack"
	"github.com/Faultbox/rbxvmf/pkg/rbx"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.SaveConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// run converts the configured input and writes the map and its materials.
func run(ctx context.Context, cfg *config.Config) error {
	logger.Info("converting",
		zap.String("input", cfg.Input.Path),
		zap.Float64("map_scale", cfg.Convert.MapScale),
		zap.Bool("optimize", cfg.Convert.Optimize),
		zap.Bool("auto_skybox", cfg.Convert.AutoSkybox),
		zap.String("game", cfg.Convert.Game))

	skyName, err := convert.SkyName(cfg.Convert.Game)
	if err != nil {
		return err
	}

	scene, err := parseInput(cfg)
	if err != nil {
		return err
	}

	c := convert.Converter{
		Options: cfg.ConvertOptions(),
		Logger:  logger.Named("convert"),
	}
	built, err := c.Build(scene.Parts)
	if err != nil {
		return err
	}

	if err := writeMap(cfg.Output.VMF, built, skyName); err != nil {
		return err
	}
	logger.Info("wrote map", zap.String("path", cfg.Output.VMF))

	if !cfg.Output.Textures {
		return nil
	}
	return exportTextures(ctx, cfg, built)
}

func parseInput(cfg *config.Config) (*rbx.Scene, error) {
	f, err := os.Open(cfg.Input.Path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	scene, err := rbx.Parse(f, rbx.ParseOptions{DecalSize: cfg.Convert.DecalSize})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cfg.Input.Path, err)
	}

	for _, s := range scene.Skipped {
		logger.Warn("skipped malformed item",
			zap.String("class", s.Class),
			zap.String("referent", s.Referent),
			zap.Int64("start", s.Start),
			zap.Int64("end", s.End),
			zap.Error(s.Reason))
	}
	logger.Info("parsed place",
		zap.Int("parts", len(scene.Parts)),
		zap.Int("skipped", len(scene.Skipped)))
	return scene, nil
}

func writeMap(path string, scene *convert.Scene, skyName string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := scene.WriteVMF(f, skyName); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func exportTextures(ctx context.Context, cfg *config.Config, scene *convert.Scene) (err error) {
	var sink pack.Sink
	if cfg.Output.Archive != "" {
		if mkErr := os.MkdirAll(filepath.Dir(cfg.Output.Archive), 0755); mkErr != nil {
			return mkErr
		}
		f, createErr := os.Create(cfg.Output.Archive)
		if createErr != nil {
			return fmt.Errorf("creating archive: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		sink = pack.NewZipSink(f)
	} else {
		sink = pack.NewDirSink(cfg.Output.TextureDir)
	}

	e := convert.Exporter{
		Sink:    sink,
		Fetcher: convert.NewHTTPFetcher(cfg.Textures.AssetURL, cfg.Textures.FetchTimeout),
		Catalog: convert.DirCatalog{Root: cfg.Textures.SourceDir},
		Logger:  logger.Named("export"),
	}
	if _, err := e.Export(ctx, scene.Textures.All()); err != nil {
		sink.Close()
		return err
	}
	return sink.Close()
}
