package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0x4d5352/regexcore/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "regexcore.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Fatalf("expected default configuration to validate, got %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
target_version = "ecma"
max_pattern_length = 512
dfa_state_limit = 500

[cache]
kind = "fs"
dir = "/tmp/regexcore-cache"
`)
	loader, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TargetVersion != "ecma" {
		t.Fatalf("expected target_version ecma, got %q", cfg.TargetVersion)
	}
	if cfg.MaxPatternLength != 512 {
		t.Fatalf("expected max_pattern_length 512, got %d", cfg.MaxPatternLength)
	}
	if cfg.Cache.Kind != config.CacheFS || cfg.Cache.Dir != "/tmp/regexcore-cache" {
		t.Fatalf("expected fs cache with dir set, got %+v", cfg.Cache)
	}
	// Untouched fields keep their defaults.
	if cfg.MaxRecursionDepth != config.Default().MaxRecursionDepth {
		t.Fatalf("expected max_recursion_depth to keep its default")
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, `made_up_field = true`)
	loader, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if _, err := loader.Load(); err == nil {
		t.Fatalf("expected an unknown top-level field to fail schema validation")
	}
}

func TestLoadRejectsUnknownTargetVersion(t *testing.T) {
	path := writeConfig(t, `target_version = "basic-ere-but-made-up"`)
	loader, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if _, err := loader.Load(); err == nil {
		t.Fatalf("expected an unrecognized target_version to fail validation")
	}
}

func TestLoadRejectsFSCacheWithoutDir(t *testing.T) {
	path := writeConfig(t, "[cache]\nkind = \"fs\"\n")
	loader, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if _, err := loader.Load(); err == nil {
		t.Fatalf("expected fs cache without a dir to fail Validate")
	}
}
