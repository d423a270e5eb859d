package graph

import "fmt"

// State is a node in the graph. Its Kind decides whether a given input
// symbol advances through it; transitions to/from it carry no label of
// their own.
type State struct {
	id   int
	kind Kind

	succs []*State
	preds []*State

	// Symbol
	sym byte

	// Range
	lo, hi byte

	// Class
	class *CharClass

	// Lookahead
	negative           bool
	lookStart, lookEnd *State

	// Macro
	macroStart, macroEnd *State
	macroConsumes        bool

	removed bool
}

// ID returns the state's identity within its owning graph. IDs are
// stable for the lifetime of the graph and used by the executor to
// index bitset/map frontiers.
func (s *State) ID() int { return s.id }

// KindOf returns the state's tagged variant.
func (s *State) KindOf() Kind { return s.kind }

// Succs returns the state's outgoing transitions, in insertion order.
func (s *State) Succs() []*State { return s.succs }

// Preds returns the state's incoming back-edges, in insertion order.
func (s *State) Preds() []*State { return s.preds }

// Sym returns the literal byte a Symbol state matches.
func (s *State) Sym() byte { return s.sym }

// RangeBounds returns the inclusive bounds a Range state matches.
func (s *State) RangeBounds() (byte, byte) { return s.lo, s.hi }

// ClassPredicate returns the predicate a Class state matches against.
func (s *State) ClassPredicate() *CharClass { return s.class }

// LookaheadSub returns the (start, accept) pair of the lookahead's
// subgraph and whether the assertion is negative.
func (s *State) LookaheadSub() (start, accept *State, negative bool) {
	return s.lookStart, s.lookEnd, s.negative
}

// MacroSub returns the (start, accept) pair of the macro's sub-automaton
// and whether traversal consumes the symbols matched along the way.
func (s *State) MacroSub() (start, accept *State, consumes bool) {
	return s.macroStart, s.macroEnd, s.macroConsumes
}

// MatchSymbol examines the state's kind against symbol b. consumed
// reports whether this kind consumes an input symbol at all (false for
// Epsilon, Lookahead, and Macro, which are handled by the executor's
// epsilon-closure instead); ok reports whether b is accepted when
// consumed is true.
func (s *State) MatchSymbol(b byte) (consumed, ok bool) {
	switch s.kind {
	case Epsilon, Lookahead, Macro:
		return false, false
	case Any:
		return true, b != 0
	case Symbol:
		return true, b == s.sym
	case Range:
		return true, b >= s.lo && b <= s.hi
	case Class:
		return true, s.class.Test(b)
	default:
		panic(fmt.Sprintf("graph: unhandled state kind %v", s.kind))
	}
}

// Clone deep-copies the state's kind-specific payload into g, producing
// a new owned state with no edges of its own. Lookahead and Macro states
// additionally clone their referenced sub-automaton so that the clone is
// self-contained and preserves the original's cycle structure (required
// for the clone-fidelity property of Graph.CloneFragment).
func (s *State) Clone(g *Graph) *State {
	switch s.kind {
	case Epsilon:
		return g.NewEpsilon()
	case Any:
		return g.NewAny()
	case Symbol:
		return g.NewSymbol(s.sym)
	case Range:
		return g.NewRange(s.lo, s.hi)
	case Class:
		return g.NewClass(s.class)
	case Lookahead:
		start, end := cloneSubgraph(g, s.lookStart, s.lookEnd)
		return g.NewLookahead(s.negative, start, end)
	case Macro:
		start, end := cloneSubgraph(g, s.macroStart, s.macroEnd)
		return g.NewMacro(start, end, s.macroConsumes)
	default:
		panic(fmt.Sprintf("graph: unhandled state kind %v", s.kind))
	}
}

// cloneSubgraph deep-copies every state reachable from start without
// crossing past end, preserving internal cycles via a seen map. Shared
// by State.Clone (for Lookahead/Macro payloads) and Graph.CloneFragment,
// which the builder's PushRepeat uses for quantifier expansion.
func cloneSubgraph(g *Graph, start, end *State) (*State, *State) {
	seen := make(map[*State]*State)
	var walk func(*State) *State
	walk = func(s *State) *State {
		if c, ok := seen[s]; ok {
			return c
		}
		c := s.Clone(g)
		seen[s] = c
		if s == end {
			return c
		}
		for _, succ := range s.succs {
			g.Connect(c, walk(succ))
		}
		return c
	}
	newStart := walk(start)
	newEnd, ok := seen[end]
	if !ok {
		// end unreachable from start (degenerate single-state subgraph
		// where start == end was already handled above); fall back to
		// cloning it directly so callers always get a valid pair.
		newEnd = walk(end)
	}
	return newStart, newEnd
}
