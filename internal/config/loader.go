package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/0x4d5352/regexcore/internal/errs"
)

// Loader reads a Configuration document from disk, validates it against
// schemaJSON, and optionally watches it for edits. viper handles file
// discovery, env-var overlay (REGEXCORE_* prefix) and the watch plumbing;
// pelletier/go-toml/v2 decodes the raw document a second, independent way
// so schema validation sees exactly what's on disk rather than viper's
// lowercased/merged settings view.
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader opens path (a TOML file) and performs an initial read. The
// Configuration itself is obtained by calling Load.
func NewLoader(path string) (*Loader, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("REGEXCORE")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, errs.Config("E_CONFIG_READ", err.Error())
	}
	return &Loader{v: v, path: path}, nil
}

// Load decodes and validates the current document, returning Configuration
// defaults overlaid with whatever the document and environment specify.
func (l *Loader) Load() (Configuration, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return Configuration{}, errs.Config("E_CONFIG_READ", err.Error())
	}

	var doc map[string]any
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return Configuration{}, errs.Config("E_CONFIG_PARSE", err.Error())
	}
	if err := validateDocument(doc); err != nil {
		return Configuration{}, err
	}

	cfg := Default()
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Configuration{}, errs.Config("E_CONFIG_DECODE", err.Error())
	}
	// Env-var overrides always arrive as strings; re-coerce the numeric
	// fields viper's own decode hooks might have left untouched.
	if v := l.v.Get("max_pattern_length"); v != nil {
		cfg.MaxPatternLength = cast.ToInt(v)
	}
	if v := l.v.Get("dfa_state_limit"); v != nil {
		cfg.DFAStateLimit = cast.ToInt(v)
	}

	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// Watch installs a callback invoked every time the underlying file changes,
// with the freshly reloaded Configuration (or the error from a failed
// reload — the caller decides whether to keep running on the last-good
// config or abort).
func (l *Loader) Watch(onChange func(Configuration, error)) {
	l.v.WatchConfig()
	l.v.OnConfigChange(func(_ fsnotify.Event) {
		onChange(l.Load())
	})
}

// validateDocument checks doc (decoded from TOML, so numbers arrive as
// int64/float64 and tables as map[string]any) against schemaJSON.
// jsonschema expects the same value shapes encoding/json produces, so the
// document is round-tripped through JSON first to normalize numeric types.
func validateDocument(doc map[string]any) error {
	buf, err := json.Marshal(doc)
	if err != nil {
		return errs.Config("E_CONFIG_PARSE", err.Error())
	}
	var normalized any
	if err := json.Unmarshal(buf, &normalized); err != nil {
		return errs.Config("E_CONFIG_PARSE", err.Error())
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return errs.Config("E_CONFIG_SCHEMA", err.Error())
	}
	sch, err := compiler.Compile("config.schema.json")
	if err != nil {
		return errs.Config("E_CONFIG_SCHEMA", err.Error())
	}
	if err := sch.Validate(normalized); err != nil {
		return errs.Config("E_CONFIG_INVALID", err.Error())
	}
	return nil
}
