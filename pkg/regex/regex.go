// Package regex is the public facade over the builder, optimizer, and
// executor: compile a pattern once, then test as many inputs against
// it as needed without recompiling.
package regex

import (
	"github.com/regraph/nfarex/internal/builder"
	"github.com/regraph/nfarex/internal/executor"
	"github.com/regraph/nfarex/internal/graph"
	"github.com/regraph/nfarex/internal/logging"
	"github.com/regraph/nfarex/internal/optimizer"
	"github.com/regraph/nfarex/internal/parser"
)

// Regex is a compiled pattern, ready to test inputs against. A Regex
// owns its graph; building it runs the builder and optimizer exactly
// once, and every subsequent Accept/MatchBytes call only simulates.
type Regex struct {
	pattern  string
	g        *graph.Graph
	log      *logging.Logger
	analysis AnalyzeResult
}

// Compile parses pattern and builds its compiled form with default
// settings (logging disabled, default group-depth cap).
func Compile(pattern string) (*Regex, error) {
	return CompileConfig(Config{Pattern: pattern})
}

// MustCompile is like Compile but panics instead of returning an
// error, for patterns known at init time to be valid.
func MustCompile(pattern string) *Regex {
	r, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// CompileConfig compiles a pattern under the given Config.
func CompileConfig(cfg Config) (*Regex, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.New(cfg.Verbose)
	log.Section("compile " + cfg.Pattern)

	b := builder.NewWithCap(log, cfg.maxGroupDepth())
	if err := parser.Parse(cfg.Pattern, b); err != nil {
		return nil, err
	}
	g, err := b.Finish()
	if err != nil {
		return nil, err
	}
	removed := optimizer.Run(g, log)

	if err := g.CheckInvariants(); err != nil {
		// InvariantViolation: an internal bug, not a caller mistake.
		panic(err)
	}

	return &Regex{
		pattern:  cfg.Pattern,
		g:        g,
		log:      log,
		analysis: analyze(g, b, removed),
	}, nil
}

// Pattern returns the original pattern text this Regex was compiled from.
func (r *Regex) Pattern() string { return r.pattern }

// Accept reports whether input, taken as a whole, is accepted by the
// compiled pattern. Matching is full-input: a prefix match does not
// count as acceptance.
func (r *Regex) Accept(input string) bool {
	return executor.Run(r.g, []byte(input), r.log)
}

// MatchBytes is Accept over a byte slice, avoiding a string conversion
// for callers that already hold one.
func (r *Regex) MatchBytes(input []byte) bool {
	return executor.Run(r.g, input, r.log)
}

// NewExecutor returns a step-controlled Executor bound to input,
// for callers that want to drive matching one symbol at a time instead
// of calling Accept/MatchBytes.
func (r *Regex) NewExecutor(input []byte) *executor.Executor {
	return executor.New(r.g, input, r.log)
}

// Graph returns the compiled graph backing this Regex, for callers
// that need to hand it to internal/dump or run their own executor.
func (r *Regex) Graph() *graph.Graph { return r.g }

// Analyze returns the side-channel AnalyzeResult computed at compile
// time. It never influences Accept/MatchBytes.
func (r *Regex) Analyze() AnalyzeResult { return r.analysis }
