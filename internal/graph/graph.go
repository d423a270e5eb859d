package graph

import "fmt"

// Graph owns every state reachable from Start for the lifetime of the
// compilation. States are arena-allocated (held in the states slice,
// indexed by ID) rather than reference-counted, so bulk destruction
// never double-frees and never needs cycle detection.
type Graph struct {
	states []*State
	Start  *State
	Accept *State
}

// NewGraph creates a graph with a fresh Start and Accept state, both
// epsilon-kinded, as required by spec §3's invariants.
func NewGraph() *Graph {
	g := &Graph{}
	g.Start = g.NewEpsilon()
	g.Accept = g.NewEpsilon()
	return g
}

func (g *Graph) alloc(kind Kind) *State {
	s := &State{id: len(g.states), kind: kind}
	g.states = append(g.states, s)
	return s
}

// NewEpsilon allocates an owned Epsilon state.
func (g *Graph) NewEpsilon() *State { return g.alloc(Epsilon) }

// NewAny allocates an owned Any state.
func (g *Graph) NewAny() *State { return g.alloc(Any) }

// NewSymbol allocates an owned Symbol state matching c.
func (g *Graph) NewSymbol(c byte) *State {
	s := g.alloc(Symbol)
	s.sym = c
	return s
}

// NewRange allocates an owned Range state matching [lo, hi].
func (g *Graph) NewRange(lo, hi byte) *State {
	s := g.alloc(Range)
	s.lo, s.hi = lo, hi
	return s
}

// NewClass allocates an owned Class state matching cc's predicate.
func (g *Graph) NewClass(cc *CharClass) *State {
	s := g.alloc(Class)
	s.class = cc
	return s
}

// NewLookahead allocates an owned Lookahead state over the given
// sub-automaton. The sub-automaton's states must already belong to g
// (the builder constructs them via beginMacro/endMacro-style nesting).
func (g *Graph) NewLookahead(negative bool, start, accept *State) *State {
	s := g.alloc(Lookahead)
	s.negative = negative
	s.lookStart, s.lookEnd = start, accept
	return s
}

// NewMacro allocates an owned Macro splice state over the given
// sub-automaton.
func (g *Graph) NewMacro(start, accept *State, consumes bool) *State {
	s := g.alloc(Macro)
	s.macroStart, s.macroEnd = start, accept
	s.macroConsumes = consumes
	return s
}

// Connect adds transition u → v, maintaining the reciprocal back-edge
// v ← u in the same call so the invariant in spec §3 can never drift.
// Duplicates are allowed (a multiset), matching spec's "multiset of
// outgoing/incoming transitions".
func (g *Graph) Connect(u, v *State) {
	u.succs = append(u.succs, v)
	v.preds = append(v.preds, u)
}

// Disconnect removes one occurrence of the transition u → v, along with
// its reciprocal back-edge, leaving any other edges between the same
// pair of states (the multiset permits duplicates) untouched.
func (g *Graph) Disconnect(u, v *State) {
	for i, s := range u.succs {
		if s == v {
			u.succs = append(u.succs[:i], u.succs[i+1:]...)
			break
		}
	}
	for i, p := range v.preds {
		if p == u {
			v.preds = append(v.preds[:i], v.preds[i+1:]...)
			break
		}
	}
}

// States returns every live state owned by the graph, ordered by ID.
// States logically removed by the optimizer are excluded.
func (g *Graph) States() []*State {
	live := make([]*State, 0, len(g.states))
	for _, s := range g.states {
		if !s.removed {
			live = append(live, s)
		}
	}
	return live
}

// NumStates returns the number of IDs ever allocated, including states
// later removed. Bitset frontiers size themselves against this, so a
// removed state's ID is never reused and never causes a collision.
func (g *Graph) NumStates() int { return len(g.states) }

// StateByID returns the state allocated with the given ID, whether or
// not it has since been removed. The executor uses this to translate a
// frontier's bitset/map of IDs back into states it can dispatch on.
func (g *Graph) StateByID(id int) *State { return g.states[id] }

// Remove logically deletes s from the owned set. The caller must have
// already rewired every edge through s before calling Remove — this
// only clears s's own edge lists and marks it removed, so a dangling
// reference to s (if any survives) can't be double-freed or revisited.
func (g *Graph) Remove(s *State) {
	s.succs = nil
	s.preds = nil
	s.removed = true
}

// CloneFragment deep-copies every state reachable from start without
// crossing past end, preserving internal cycles. The builder uses this
// to expand bounded repetition into a chain of independent copies of
// the same sub-automaton.
func (g *Graph) CloneFragment(start, end *State) (*State, *State) {
	return cloneSubgraph(g, start, end)
}

// CheckInvariants walks the owned state set and verifies spec §3's
// back-edge invariant. It is used by tests and by callers that want to
// catch an InvariantViolation explicitly instead of discovering it as a
// nil-pointer panic deep in the executor.
func (g *Graph) CheckInvariants() error {
	for _, u := range g.states {
		for _, v := range u.succs {
			found := false
			for _, p := range v.preds {
				if p == u {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("graph: invariant violation: state %d has successor %d with no reciprocal back-edge", u.id, v.id)
			}
		}
	}
	return nil
}
