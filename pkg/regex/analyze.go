package regex

import (
	"github.com/regraph/nfarex/internal/builder"
	"github.com/regraph/nfarex/internal/graph"
)

// AnalyzeResult is a non-authoritative report about a compiled
// pattern's graph shape, computed once at compile time. Nothing in
// Accept or MatchBytes consults it — it exists for diagnostics and for
// cmd/regex's inspect command.
type AnalyzeResult struct {
	StateCount        int
	HasClass          bool
	HasRange          bool
	HasLookahead      bool
	HasMacro          bool
	EpsilonsCollapsed int
	MaxGroupDepth     int
}

func analyze(g *graph.Graph, b *builder.Builder, epsilonsCollapsed int) AnalyzeResult {
	r := AnalyzeResult{
		StateCount:        len(g.States()),
		EpsilonsCollapsed: epsilonsCollapsed,
		MaxGroupDepth:     b.MaxDepthSeen(),
	}
	for _, s := range g.States() {
		switch s.KindOf() {
		case graph.Class:
			r.HasClass = true
		case graph.Range:
			r.HasRange = true
		case graph.Lookahead:
			r.HasLookahead = true
		case graph.Macro:
			r.HasMacro = true
		}
	}
	return r
}
