// Package config handles converter configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/rbxvmf/internal/convert"
	"github.com/Faultbox/rbxvmf/pkg/rbx"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all converter settings.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Convert  ConvertConfig  `yaml:"convert"`
	Textures TexturesConfig `yaml:"textures"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig holds the place file location.
type InputConfig struct {
	Path string `yaml:"path"` // RBXLX place file
}

// OutputConfig holds output locations.
type OutputConfig struct {
	VMF        string `yaml:"vmf"`
	TextureDir string `yaml:"texture_dir"`
	Textures   bool   `yaml:"textures"`
	Archive    string `yaml:"archive"` // Zip file replacing the texture directory
}

// ConvertConfig holds geometry settings.
type ConvertConfig struct {
	MapScale        float64 `yaml:"map_scale"`
	AutoSkybox      bool    `yaml:"auto_skybox"`
	SkyboxClearance float64 `yaml:"skybox_clearance"`
	Optimize        bool    `yaml:"optimize"`
	DevTextures     bool    `yaml:"dev_textures"`
	DecalSize       uint64  `yaml:"decal_size"`
	Game            string  `yaml:"game"`
}

// TexturesConfig holds texture source settings.
type TexturesConfig struct {
	SourceDir    string        `yaml:"source_dir"` // Stock material textures
	AssetURL     string        `yaml:"asset_url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			VMF:        "rbxlx_out.vmf",
			TextureDir: "./textures-out",
			Textures:   true,
		},
		Convert: ConvertConfig{
			MapScale:  convert.DefaultMapScale,
			DecalSize: rbx.DefaultDecalSize,
			Game:      "hl2",
		},
		Textures: TexturesConfig{
			SourceDir:    "textures",
			AssetURL:     convert.DefaultAssetURL,
			FetchTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks settings that would make a conversion fail.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("%w: no input file", ErrInvalidConfig)
	}
	if c.Output.VMF == "" {
		return fmt.Errorf("%w: no output file", ErrInvalidConfig)
	}
	if !(c.Convert.MapScale > 0) {
		return fmt.Errorf("%w: map scale must be positive, got %v", ErrInvalidConfig, c.Convert.MapScale)
	}
	if c.Convert.DecalSize == 0 {
		return fmt.Errorf("%w: decal size must be positive", ErrInvalidConfig)
	}
	if c.Convert.SkyboxClearance < 0 {
		return fmt.Errorf("%w: skybox clearance must not be negative", ErrInvalidConfig)
	}
	if _, err := convert.SkyName(c.Convert.Game); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ConvertOptions returns the geometry options for a Converter.
func (c *Config) ConvertOptions() convert.Options {
	return convert.Options{
		MapScale:        c.Convert.MapScale,
		AutoSkybox:      c.Convert.AutoSkybox,
		SkyboxClearance: c.Convert.SkyboxClearance,
		Optimize:        c.Convert.Optimize,
		DevTextures:     c.Convert.DevTextures,
	}
}
