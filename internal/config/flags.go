package config

import (
	"flag"
	"strings"

	"github.com/Faultbox/rbxvmf/internal/convert"
)

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagSaveConfig    = flag.String("save-config", "", "Write the effective config to this file and exit")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagInput         = flag.String("input", "", "Input RBXLX place file")
	flagOutput        = flag.String("output", "", "Output VMF file")
	flagTextureOutput = flag.String("texture-output", "", "Texture output directory")
	flagArchive       = flag.String("archive", "", "Write textures to this zip file instead of a directory")
	flagNoTextures    = flag.Bool("no-textures", false, "Skip texture export")
	flagDevTextures   = flag.Bool("dev-textures", false, "Use developer textures for every face")
	flagAutoSkybox    = flag.Bool("auto-skybox", false, "Enclose the map in a skybox")
	flagOptimize      = flag.Bool("optimize", false, "Join adjacent identical parts")
	flagSkyboxHeight  = flag.Float64("skybox-height", 0, "Extra auto-skybox height clearance in studs")
	flagMapScale      = flag.Float64("map-scale", 0, "Map units per stud")
	flagDecalSize     = flag.Uint64("decal-size", 0, "Downloaded decal texture size in pixels")
	flagGame          = flag.String("game", "", "Target game: "+strings.Join(convert.Games(), ", "))
)

func init() {
	flag.StringVar(flagInput, "i", "", "Shorthand for -input")
	flag.StringVar(flagOutput, "o", "", "Shorthand for -output")
	flag.StringVar(flagGame, "g", "", "Shorthand for -game")
}

// ParseFlags parses command-line flags. Call this early in main().
// A single positional argument is taken as the input file.
func ParseFlags() {
	flag.Parse()
	if *flagInput == "" && flag.NArg() == 1 {
		*flagInput = flag.Arg(0)
	}
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigPath returns the path given via --save-config, if any.
func SaveConfigPath() string {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagInput != "" {
		cfg.Input.Path = *flagInput
	}
	if *flagOutput != "" {
		cfg.Output.VMF = *flagOutput
	}
	if *flagTextureOutput != "" {
		cfg.Output.TextureDir = *flagTextureOutput
	}
	if *flagArchive != "" {
		cfg.Output.Archive = *flagArchive
	}
	if *flagNoTextures {
		cfg.Output.Textures = false
	}
	if *flagDevTextures {
		cfg.Convert.DevTextures = true
	}
	if *flagAutoSkybox {
		cfg.Convert.AutoSkybox = true
	}
	if *flagOptimize {
		cfg.Convert.Optimize = true
	}
	if *flagSkyboxHeight > 0 {
		cfg.Convert.SkyboxClearance = *flagSkyboxHeight
	}
	if *flagMapScale > 0 {
		cfg.Convert.MapScale = *flagMapScale
	}
	if *flagDecalSize > 0 {
		cfg.Convert.DecalSize = *flagDecalSize
	}
	if *flagGame != "" {
		cfg.Convert.Game = *flagGame
	}
}
