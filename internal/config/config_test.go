package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/rbxvmf/internal/convert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test output defaults
	if cfg.Output.VMF != "rbxlx_out.vmf" {
		t.Errorf("expected output rbxlx_out.vmf, got %s", cfg.Output.VMF)
	}
	if cfg.Output.TextureDir != "./textures-out" {
		t.Errorf("expected texture dir ./textures-out, got %s", cfg.Output.TextureDir)
	}
	if !cfg.Output.Textures {
		t.Error("expected textures to be enabled by default")
	}

	// Test convert defaults
	if cfg.Convert.MapScale != 15 {
		t.Errorf("expected map scale 15, got %f", cfg.Convert.MapScale)
	}
	if cfg.Convert.DecalSize != 256 {
		t.Errorf("expected decal size 256, got %d", cfg.Convert.DecalSize)
	}
	if cfg.Convert.Optimize || cfg.Convert.AutoSkybox || cfg.Convert.DevTextures {
		t.Error("expected optional passes to be off by default")
	}

	// Test texture defaults
	if cfg.Textures.FetchTimeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.Textures.FetchTimeout)
	}
	if cfg.Textures.AssetURL != convert.DefaultAssetURL {
		t.Errorf("expected default asset URL, got %s", cfg.Textures.AssetURL)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "rbxvmf.yaml")

	yamlContent := `
input:
  path: "place.rbxlx"

output:
  vmf: "maps/place.vmf"
  textures: false
  archive: "materials.zip"

convert:
  map_scale: 12.5
  auto_skybox: true
  skybox_clearance: 100
  optimize: true
  decal_size: 512
  game: "tf2"

textures:
  source_dir: "/opt/rbx/textures"
  fetch_timeout: 5s

logging:
  level: "debug"
  log_file: "rbxvmf.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Input.Path != "place.rbxlx" {
		t.Errorf("expected input place.rbxlx, got %s", cfg.Input.Path)
	}
	if cfg.Output.VMF != "maps/place.vmf" {
		t.Errorf("expected output maps/place.vmf, got %s", cfg.Output.VMF)
	}
	if cfg.Output.Textures {
		t.Error("expected textures to be disabled")
	}
	if cfg.Output.Archive != "materials.zip" {
		t.Errorf("expected archive materials.zip, got %s", cfg.Output.Archive)
	}
	// Unset keys keep their defaults
	if cfg.Output.TextureDir != "./textures-out" {
		t.Errorf("expected default texture dir, got %s", cfg.Output.TextureDir)
	}

	if cfg.Convert.MapScale != 12.5 {
		t.Errorf("expected map scale 12.5, got %f", cfg.Convert.MapScale)
	}
	if !cfg.Convert.AutoSkybox || !cfg.Convert.Optimize {
		t.Error("expected auto skybox and optimize to be enabled")
	}
	if cfg.Convert.SkyboxClearance != 100 {
		t.Errorf("expected clearance 100, got %f", cfg.Convert.SkyboxClearance)
	}
	if cfg.Convert.DecalSize != 512 {
		t.Errorf("expected decal size 512, got %d", cfg.Convert.DecalSize)
	}
	if cfg.Convert.Game != "tf2" {
		t.Errorf("expected game tf2, got %s", cfg.Convert.Game)
	}

	if cfg.Textures.SourceDir != "/opt/rbx/textures" {
		t.Errorf("expected source dir /opt/rbx/textures, got %s", cfg.Textures.SourceDir)
	}
	if cfg.Textures.FetchTimeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Textures.FetchTimeout)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "rbxvmf.log" {
		t.Errorf("expected log file 'rbxvmf.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "convert:\n  map_scale: not a number\n  invalid syntax here\n"},
		{"unknown key", "graphics:\n  width: 1280\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Convert.MapScale != 15 {
		t.Errorf("expected defaults to survive, got map scale %f", cfg.Convert.MapScale)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
	if !strings.Contains(dir, "rbxvmf") {
		t.Errorf("ConfigDir should be application specific, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Keep the per-user location out of the test
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create rbxvmf.yaml in current directory
	configPath := filepath.Join(tmpDir, "rbxvmf.yaml")
	if err := os.WriteFile(configPath, []byte("convert:\n  map_scale: 8\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find rbxvmf.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "paths",
			setup: func() {
				*flagInput = "in.rbxlx"
				*flagOutput = "out.vmf"
				*flagTextureOutput = "tex"
				*flagArchive = "tex.zip"
			},
			verify: func(cfg *Config) {
				if cfg.Input.Path != "in.rbxlx" || cfg.Output.VMF != "out.vmf" {
					t.Errorf("unexpected paths %s -> %s", cfg.Input.Path, cfg.Output.VMF)
				}
				if cfg.Output.TextureDir != "tex" || cfg.Output.Archive != "tex.zip" {
					t.Errorf("unexpected texture output %s, %s", cfg.Output.TextureDir, cfg.Output.Archive)
				}
			},
			teardown: func() {
				*flagInput = ""
				*flagOutput = ""
				*flagTextureOutput = ""
				*flagArchive = ""
			},
		},
		{
			name: "no textures flag",
			setup: func() {
				*flagNoTextures = true
			},
			verify: func(cfg *Config) {
				if cfg.Output.Textures {
					t.Error("expected textures to be disabled with no-textures flag")
				}
			},
			teardown: func() {
				*flagNoTextures = false
			},
		},
		{
			name: "conversion switches",
			setup: func() {
				*flagDevTextures = true
				*flagAutoSkybox = true
				*flagOptimize = true
				*flagSkyboxHeight = 40
			},
			verify: func(cfg *Config) {
				if !cfg.Convert.DevTextures || !cfg.Convert.AutoSkybox || !cfg.Convert.Optimize {
					t.Errorf("expected switches enabled, got %+v", cfg.Convert)
				}
				if cfg.Convert.SkyboxClearance != 40 {
					t.Errorf("expected clearance 40, got %f", cfg.Convert.SkyboxClearance)
				}
			},
			teardown: func() {
				*flagDevTextures = false
				*flagAutoSkybox = false
				*flagOptimize = false
				*flagSkyboxHeight = 0
			},
		},
		{
			name: "scale and game flags",
			setup: func() {
				*flagMapScale = 32
				*flagDecalSize = 1024
				*flagGame = "gmod"
			},
			verify: func(cfg *Config) {
				if cfg.Convert.MapScale != 32 {
					t.Errorf("expected map scale 32, got %f", cfg.Convert.MapScale)
				}
				if cfg.Convert.DecalSize != 1024 {
					t.Errorf("expected decal size 1024, got %d", cfg.Convert.DecalSize)
				}
				if cfg.Convert.Game != "gmod" {
					t.Errorf("expected game gmod, got %s", cfg.Convert.Game)
				}
			},
			teardown: func() {
				*flagMapScale = 0
				*flagDecalSize = 0
				*flagGame = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
convert:
  map_scale: 10
  decal_size: 128
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagMapScale = 20
	defer func() {
		*flagConfig = ""
		*flagMapScale = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Map scale should be from flag (20), not file (10)
	if cfg.Convert.MapScale != 20 {
		t.Errorf("expected map scale 20 from flag, got %f", cfg.Convert.MapScale)
	}

	// Decal size should be from file (128) since no flag override
	if cfg.Convert.DecalSize != 128 {
		t.Errorf("expected decal size 128 from file, got %d", cfg.Convert.DecalSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"no input", func(c *Config) { c.Input.Path = "" }, false},
		{"no output", func(c *Config) { c.Output.VMF = "" }, false},
		{"zero scale", func(c *Config) { c.Convert.MapScale = 0 }, false},
		{"negative scale", func(c *Config) { c.Convert.MapScale = -1 }, false},
		{"zero decal size", func(c *Config) { c.Convert.DecalSize = 0 }, false},
		{"negative clearance", func(c *Config) { c.Convert.SkyboxClearance = -5 }, false},
		{"unknown game", func(c *Config) { c.Convert.Game = "quake" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Input.Path = "place.rbxlx"
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateUnknownGame(t *testing.T) {
	cfg := Default()
	cfg.Input.Path = "place.rbxlx"
	cfg.Convert.Game = "quake"
	if err := cfg.Validate(); !errors.Is(err, convert.ErrUnknownGame) {
		t.Errorf("expected wrapped ErrUnknownGame, got %v", err)
	}
}

func TestConvertOptions(t *testing.T) {
	cfg := Default()
	cfg.Convert.AutoSkybox = true
	cfg.Convert.SkyboxClearance = 25

	opts := cfg.ConvertOptions()
	if opts.MapScale != 15 || !opts.AutoSkybox || opts.SkyboxClearance != 25 {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rbxvmf.yaml")

	cfg := Default()
	cfg.Input.Path = "place.rbxlx"
	cfg.Convert.Game = "portal2"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Convert.Game != "portal2" {
		t.Errorf("expected game portal2, got %s", loaded.Convert.Game)
	}
	if loaded.Input.Path != "" {
		t.Errorf("input path should not be saved, got %s", loaded.Input.Path)
	}
	if cfg.Input.Path != "place.rbxlx" {
		t.Error("SaveTo must not modify the config")
	}
}
