package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadApplicationConfig(t *testing.T) {
	path := writeConfig(t, `
name = "Test Viewer"
width = 800
height = 600
assets_dir = "data"
scene = "scenes/test.yaml"
font = "ubuntu-mono-21"
log_level = "debug"
`)

	config, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if config.Name != "Test Viewer" {
		t.Errorf("unexpected name %q", config.Name)
	}
	if config.StartWidth != 800 || config.StartHeight != 600 {
		t.Errorf("unexpected dimensions %dx%d", config.StartWidth, config.StartHeight)
	}
	if config.AssetsDir != "data" {
		t.Errorf("unexpected assets dir %q", config.AssetsDir)
	}
	if config.SceneManifest != "scenes/test.yaml" {
		t.Errorf("unexpected scene %q", config.SceneManifest)
	}
	if config.FontName != "ubuntu-mono-21" {
		t.Errorf("unexpected font %q", config.FontName)
	}
	if config.LogLevel != "debug" {
		t.Errorf("unexpected log level %q", config.LogLevel)
	}
}

func TestLoadApplicationConfigFillsDefaults(t *testing.T) {
	config, err := LoadApplicationConfig(writeConfig(t, `name = "Minimal"`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if config.StartWidth != 1280 || config.StartHeight != 720 {
		t.Errorf("expected default dimensions, got %dx%d", config.StartWidth, config.StartHeight)
	}
	if config.AssetsDir != "assets" {
		t.Errorf("expected default assets dir, got %q", config.AssetsDir)
	}
	if config.LogLevel != "info" {
		t.Errorf("expected default log level, got %q", config.LogLevel)
	}
	if config.SceneManifest != "" || config.FontName != "" {
		t.Errorf("scene and font should stay empty when omitted")
	}
}

func TestLoadApplicationConfigMissingFile(t *testing.T) {
	if _, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadApplicationConfigInvalidTOML(t *testing.T) {
	if _, err := LoadApplicationConfig(writeConfig(t, "name = [unclosed")); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}
