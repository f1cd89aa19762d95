// Package regexcore is the Facade (C13): a single configuration-driven
// entry point composing the parser, validator, normalizer, regular-subset
// gate, automata pipeline, ReDoS analyzer, literal extractor, explain
// walker and cache facade (spec.md §4.13).
package regexcore

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/cache"
	"github.com/0x4d5352/regexcore/internal/config"
	"github.com/0x4d5352/regexcore/internal/errs"
	"github.com/0x4d5352/regexcore/internal/explain"
	"github.com/0x4d5352/regexcore/internal/literal"
	"github.com/0x4d5352/regexcore/internal/normalizer"
	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/pattern"
	"github.com/0x4d5352/regexcore/internal/redos"
	"github.com/0x4d5352/regexcore/internal/regularsubset"
	"github.com/0x4d5352/regexcore/internal/render"
	"github.com/0x4d5352/regexcore/internal/runtime"
	"github.com/0x4d5352/regexcore/internal/unescape"
	"github.com/0x4d5352/regexcore/internal/validator"
)

// Facade is immutable after New: configuration and cache backend never
// change mid-lifetime, so a *Facade is safe for concurrent read-only use
// (spec.md §5's "configuration is immutable after construction").
type Facade struct {
	cfg   config.Configuration
	cache *cache.Facade
}

// New builds a Facade from cfg, validating it first and wiring whichever
// cache backend cfg.Cache names.
func New(cfg config.Configuration) (*Facade, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := buildStore(cfg.Cache)
	if err != nil {
		return nil, err
	}
	return &Facade{cfg: cfg, cache: cache.New(store)}, nil
}

func buildStore(cc config.CacheConfig) (cache.Store, error) {
	switch cc.Kind {
	case config.CacheNone:
		return nil, nil
	case config.CacheMemory:
		return cache.NewMemoryStore(cc.Capacity), nil
	case config.CacheFS:
		return cache.NewFSStore(cc.Dir), nil
	default:
		return nil, errs.Config("E_CONFIG_CACHE_KIND", fmt.Sprintf("unrecognized cache kind %q", cc.Kind))
	}
}

// Configuration returns the Facade's effective configuration.
func (f *Facade) Configuration() config.Configuration { return f.cfg }

// ParseResult is the outcome of a strict Parse call.
type ParseResult struct {
	Regex *ast.Regex
	State *ast.ParserState
}

// Parse runs a strict parse, aborting on the first syntax error.
// Unlike Validate/Redos/Literals, parse results are not memoized — the
// AST holds an internal Node interface tree that the cache's CBOR codec
// cannot round-trip, so only the cheaper, plain-data downstream outputs
// (validation, ReDoS reports, literal sets) are cached.
func (f *Facade) Parse(src string) (*ParseResult, error) {
	regex, state, err := parser.Parse(src, f.cfg.TargetVersion)
	if err != nil {
		return nil, err
	}
	return &ParseResult{Regex: regex, State: state}, nil
}

// TolerantParseResult is the outcome of a best-effort parse.
type TolerantParseResult struct {
	Regex  *ast.Regex
	State  *ast.ParserState
	Errors []*errs.Error
}

// TolerantParse never aborts; unparsable spans become ast.ErrorNode and
// every error encountered is collected.
func (f *Facade) TolerantParse(src string) *TolerantParseResult {
	res := parser.ParseTolerant(src, f.cfg.TargetVersion)
	return &TolerantParseResult{Regex: res.Regex, State: res.State, Errors: res.Errors}
}

// ValidationResult flattens validator.Result plus a complexity_score
// (spec.md §6's ValidationResult shape) drawn from a cheap, non-confirming
// ReDoS pass, so a caller gets a risk signal without a second explicit call.
type ValidationResult struct {
	Valid           bool
	Category        errs.Category
	Offset          int
	Snippet         string
	Hint            string
	Code            string
	Message         string
	ComplexityScore int
}

// Validate parses src, then runs the Validator (C4) and a theoretical-only
// ReDoS pass. The regular-subset gate is not applied here, so a pattern
// outside the regular subset still validates.
func (f *Facade) Validate(src string) (ValidationResult, error) {
	key := f.cache.Key("validate", src, string(f.cfg.TargetVersion))
	if raw, ok := f.cache.Load(key); ok {
		var cached ValidationResult
		if err := cbor.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	regex, state, err := parser.Parse(src, f.cfg.TargetVersion)
	if err != nil {
		e, _ := err.(*errs.Error)
		return f.resultFromError(e), nil
	}

	limits := validator.Limits{
		MaxPatternLength: f.cfg.MaxPatternLength,
		MaxLookbehind:    f.cfg.MaxLookbehindLength,
		MaxQuantifier:    validator.DefaultLimits().MaxQuantifier,
	}
	vr := validator.Validate(regex, state, f.cfg.TargetVersion, limits)
	if !vr.Valid {
		return f.resultFromError(vr.Error), nil
	}

	report := redos.Analyze(regex, redos.Options{})
	result := ValidationResult{Valid: true, ComplexityScore: report.Score}

	if raw, err := cbor.Marshal(result); err == nil {
		f.cache.Write(key, raw)
	}
	return result, nil
}

func (f *Facade) resultFromError(e *errs.Error) ValidationResult {
	if e == nil {
		return ValidationResult{Valid: false}
	}
	return ValidationResult{
		Valid:    false,
		Category: e.Category,
		Offset:   e.Offset,
		Snippet:  e.Snippet,
		Hint:     e.Hint,
		Code:     e.Code,
		Message:  e.Message,
	}
}

// OptimizeResult is the facade's optimize() contract: rendered pattern
// text for both forms (the normalizer only ever returns AST), plus a
// changed flag and a byte-length savings figure.
type OptimizeResult struct {
	Original  string
	Optimized string
	Changed   bool
	Savings   int
}

// Optimize applies the Normalizer's fixed rewrite catalogue (C5) and
// renders both the original and rewritten forms back to source text.
func (f *Facade) Optimize(src string, opts normalizer.Options) (OptimizeResult, error) {
	regex, _, err := parser.Parse(src, f.cfg.TargetVersion)
	if err != nil {
		return OptimizeResult{}, err
	}
	optimized := normalizer.Normalize(regex, opts)

	original := render.Pattern(regex)
	rewritten := render.Pattern(optimized)
	return OptimizeResult{
		Original:  original,
		Optimized: rewritten,
		Changed:   original != rewritten,
		Savings:   len(original) - len(rewritten),
	}, nil
}

// Explain renders src's AST per format (spec.md §6's supplemented
// explain() operation).
func (f *Facade) Explain(src string, format explain.Format) (string, error) {
	regex, _, err := parser.Parse(src, f.cfg.TargetVersion)
	if err != nil {
		return "", err
	}
	return explain.Render(regex.Body, format)
}

// Redos runs the ReDoS analyzer (C11), honoring redos_ignored_patterns
// as a plain allow-list of exact pattern strings. Results are memoized.
func (f *Facade) Redos(src string, opts redos.Options) (redos.Report, error) {
	for _, ignored := range f.cfg.RedosIgnoredPatterns {
		if ignored == src {
			return redos.Report{Severity: redos.SeveritySafe, Note: "ignored via redos_ignored_patterns"}, nil
		}
	}

	key := f.cache.Key("redos", src, string(f.cfg.TargetVersion), fmt.Sprintf("%d:%d", opts.RepeaterThreshold, opts.ConfirmAt))
	if opts.Confirm == nil {
		if raw, ok := f.cache.Load(key); ok {
			var cached redos.Report
			if err := cbor.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	regex, _, err := parser.Parse(src, f.cfg.TargetVersion)
	if err != nil {
		return redos.Report{}, err
	}
	report := redos.Analyze(regex, opts)

	if opts.Confirm == nil {
		if raw, err := cbor.Marshal(report); err == nil {
			f.cache.Write(key, raw)
		}
	}
	return report, nil
}

// RedosWithRuntimeConfirm is Redos, but wires internal/runtime.Confirm as
// the empirical-confirmation hook whenever cfg.RuntimePCREValidation is
// set and the theoretical severity reaches opts.ConfirmAt.
func (f *Facade) RedosWithRuntimeConfirm(src string, opts redos.Options) (redos.Report, error) {
	if f.cfg.RuntimePCREValidation && opts.Confirm == nil {
		_, body, flags, err := pattern.Split(src)
		if err == nil {
			opts.Confirm = func(pump string, timeout time.Duration) (time.Duration, error) {
				return runtime.Confirm(body, flags, pump, timeout)
			}
		}
	}
	return f.Redos(src, opts)
}

// Literals extracts a bounded prefix/suffix LiteralSet (C-supplemented
// literal extraction facility) from src, memoized by pattern+version.
func (f *Facade) Literals(src string, opts literal.Options) (literal.LiteralSet, error) {
	key := f.cache.Key("literals", src, string(f.cfg.TargetVersion))
	if raw, ok := f.cache.Load(key); ok {
		var cached literal.LiteralSet
		if err := cbor.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	regex, _, err := parser.Parse(src, f.cfg.TargetVersion)
	if err != nil {
		return literal.LiteralSet{}, err
	}
	set := literal.Extract(regex.Body, opts)

	if raw, err := cbor.Marshal(set); err == nil {
		f.cache.Write(key, raw)
	}
	return set, nil
}

// UnescapeStringLiteral decodes src as if it were a pattern pasted straight
// out of Java/C#/JavaScript source, where the programmer's own string
// literal syntax has doubled every backslash. It only runs the decode when
// unescape.ContainsDoubleEscapes actually sees that telltale doubling — a
// pattern typed directly (`\d+`) is returned unchanged rather than mangled.
// Callers feed the result into Parse/Validate/Redos exactly like any other
// pattern string.
func (f *Facade) UnescapeStringLiteral(src string) string {
	if !unescape.ContainsDoubleEscapes(src) {
		return src
	}
	return unescape.JavaStringLiteral(src)
}

// RegularSubset runs the RegularSubsetValidator (C10) gate that automata
// operations (the language solver) require before building an NFA.
func (f *Facade) RegularSubset(src string, opts regularsubset.Options) error {
	regex, _, err := parser.Parse(src, f.cfg.TargetVersion)
	if err != nil {
		return err
	}
	return regularsubset.Check(regex.Pattern, regex.Body, opts)
}
