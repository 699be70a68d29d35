package engine

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// ApplicationConfig describes the viewer application. It is normally
// loaded from a TOML file next to the binary.
type ApplicationConfig struct {
	// The application name used in windowing.
	Name string `toml:"name"`
	// Window starting width.
	StartWidth uint32 `toml:"width"`
	// Window starting height.
	StartHeight uint32 `toml:"height"`
	// Directory holding models, textures and fonts.
	AssetsDir string `toml:"assets_dir"`
	// Scene manifest to load on startup, relative to AssetsDir.
	SceneManifest string `toml:"scene"`
	// Bitmap font used for the HUD. Empty disables HUD text.
	FontName string `toml:"font"`
	// Log verbosity: debug, info, warn or error.
	LogLevel string `toml:"log_level"`
}

// DefaultApplicationConfig returns a config with workable defaults for
// every field a file may omit.
func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:        "Maquette Viewer",
		StartWidth:  1280,
		StartHeight: 720,
		AssetsDir:   "assets",
		LogLevel:    "info",
	}
}

// LoadApplicationConfig reads a TOML config file, filling missing
// fields with defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if config.StartWidth == 0 {
		config.StartWidth = 1280
	}
	if config.StartHeight == 0 {
		config.StartHeight = 720
	}
	return config, nil
}
