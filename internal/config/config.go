// Package config loads the single Configuration record the facade (C13)
// carries: resource limits, the target pattern dialect, cache backend
// choice, and the ReDoS ignore-list. The teacher takes all of its knobs
// from a per-invocation flag.FlagSet; this is the on-disk counterpart the
// teacher's CLI-only approach never needed — a file, optionally hot-reloaded,
// validated against a schema before anything downstream trusts it.
package config

import (
	"github.com/0x4d5352/regexcore/internal/errs"
	"github.com/0x4d5352/regexcore/internal/pattern"
)

// CacheKind selects the CacheFacade backend a Configuration wires up.
type CacheKind string

const (
	CacheNone   CacheKind = "none"
	CacheMemory CacheKind = "memory"
	CacheFS     CacheKind = "fs"
)

// CacheConfig configures whichever internal/cache.Store backs the facade.
type CacheConfig struct {
	Kind     CacheKind `mapstructure:"kind" json:"kind"`
	Dir      string    `mapstructure:"dir" json:"dir"`
	Capacity int       `mapstructure:"capacity" json:"capacity"`
}

// Configuration is the single record every facade operation reads from.
// Field names mirror spec.md §6's list exactly.
type Configuration struct {
	MaxPatternLength      int             `mapstructure:"max_pattern_length" json:"max_pattern_length"`
	MaxLookbehindLength   int             `mapstructure:"max_lookbehind_length" json:"max_lookbehind_length"`
	MaxRecursionDepth     int             `mapstructure:"max_recursion_depth" json:"max_recursion_depth"`
	TargetVersion         pattern.Version `mapstructure:"target_version" json:"target_version"`
	Cache                 CacheConfig     `mapstructure:"cache" json:"cache"`
	RuntimePCREValidation bool            `mapstructure:"runtime_pcre_validation" json:"runtime_pcre_validation"`
	RedosIgnoredPatterns  []string        `mapstructure:"redos_ignored_patterns" json:"redos_ignored_patterns"`
	AlphabetLimit         int             `mapstructure:"alphabet_limit" json:"alphabet_limit"`
	DFAStateLimit         int             `mapstructure:"dfa_state_limit" json:"dfa_state_limit"`
}

// Default returns the Configuration the facade uses absent an on-disk
// override, aligned with each collaborator's own zero-means-default
// constant (dfa.DefaultStateLimit, cache.DefaultMemoryCapacity, ...).
func Default() Configuration {
	return Configuration{
		MaxPatternLength:      65536,
		MaxLookbehindLength:   255,
		MaxRecursionDepth:     1024,
		TargetVersion:         pattern.PCRE2,
		Cache:                 CacheConfig{Kind: CacheMemory, Capacity: 4096},
		RuntimePCREValidation: false,
		RedosIgnoredPatterns:  nil,
		AlphabetLimit:         512,
		DFAStateLimit:         20000,
	}
}

// Validate checks invariants Default's JSON Schema can't express on its
// own (cross-field and enum-against-registry checks).
func (c Configuration) Validate() error {
	if c.MaxPatternLength <= 0 {
		return errs.Config("E_CONFIG_RANGE", "max_pattern_length must be positive")
	}
	if c.MaxRecursionDepth <= 0 {
		return errs.Config("E_CONFIG_RANGE", "max_recursion_depth must be positive")
	}
	if _, ok := pattern.Get(c.TargetVersion); !ok {
		return errs.Config("E_CONFIG_TARGET_VERSION", "unknown target_version: "+string(c.TargetVersion))
	}
	switch c.Cache.Kind {
	case CacheNone, CacheMemory, CacheFS:
	default:
		return errs.Config("E_CONFIG_CACHE_KIND", "unknown cache.kind: "+string(c.Cache.Kind))
	}
	if c.Cache.Kind == CacheFS && c.Cache.Dir == "" {
		return errs.Config("E_CONFIG_CACHE_DIR", "cache.dir is required when cache.kind is \"fs\"")
	}
	return nil
}
