// Package executor simulates a graph.Graph against an input, tracking
// the frontier of states reached so far without ever materializing a
// deterministic automaton. Lookaheads are resolved by a nested
// simulation over the remaining input rather than a precomputed table,
// since their outcome depends on input the rest of the graph hasn't
// seen yet.
package executor

import (
	"github.com/regraph/nfarex/internal/graph"
	"github.com/regraph/nfarex/internal/logging"
)

// Executor holds the frontier of a single simulation in progress.
type Executor struct {
	g     *graph.Graph
	log   *logging.Logger
	input []byte
	pos   int
	cur   frontier
}

// New starts a simulation of g over input from position 0.
func New(g *graph.Graph, input []byte, log *logging.Logger) *Executor {
	e := &Executor{g: g, log: log, input: input}
	e.cur = e.closure([]*graph.State{g.Start}, 0)
	return e
}

// Accepted reports whether the Accept state is in the current frontier.
func (e *Executor) Accepted() bool { return e.cur.has(e.g.Accept.ID()) }

// Pos returns the input position the frontier currently reflects.
func (e *Executor) Pos() int { return e.pos }

// Done reports whether the frontier is empty — no possible continuation
// can ever reach Accept, regardless of remaining input.
func (e *Executor) Done() bool { return e.cur.isEmpty() }

// Step consumes the next input byte, advancing the frontier. It
// reports whether the resulting frontier is non-empty; the caller
// should stop feeding input once it returns false, since the pattern
// can no longer match.
func (e *Executor) Step() bool {
	b := e.input[e.pos]
	e.cur = e.advance(e.cur, b, e.pos+1)
	e.pos++
	e.log.Log("step: consumed %q, pos=%d, accepted=%v", b, e.pos, e.Accepted())
	return !e.cur.isEmpty()
}

// Run feeds the executor's remaining input one byte at a time and
// reports whether the whole input is accepted at the end — spec's
// full-input matching semantics, with no partial-match or anchoring
// behavior.
func Run(g *graph.Graph, input []byte, log *logging.Logger) bool {
	e := New(g, input, log)
	for e.pos < len(e.input) {
		if !e.Step() {
			return false
		}
	}
	return e.Accepted()
}

// advance consumes byte b from frontier fr, producing the closure of
// every state reachable by matching b from some state in fr. nextPos
// is the input position after consuming b, used to evaluate any
// lookahead reached while closing the result.
func (e *Executor) advance(fr frontier, b byte, nextPos int) frontier {
	var seeds []*graph.State
	fr.forEach(func(id int) {
		s := e.g.StateByID(id)
		consumed, ok := s.MatchSymbol(b)
		if consumed && ok {
			seeds = append(seeds, s.Succs()...)
		}
	})
	return e.closure(seeds, nextPos)
}

// closure computes every state reachable from seeds by following
// Epsilon edges, satisfied Lookahead assertions, and Macro splices,
// without consuming any input. pos is the input position the frontier
// being built corresponds to, needed to evaluate lookaheads relative
// to the right point in the input.
//
// A consuming macro is entered by pushing its sub-automaton's start; a
// non-consuming one is checked like a positive lookahead and, when its
// sub-automaton accepts a prefix of the remaining input, closure goes on
// to the Macro state's own successors without consuming anything.
//
// A consuming macro's exit is a permanent graph edge — the sub-automaton's own
// end state is wired straight to the Macro state's outer successor at
// build time (builder.EndMacro) — rather than anything tracked here, so
// a macro that consumes input still resumes correctly after Step
// rebuilds the frontier from scratch on the next byte.
func (e *Executor) closure(seeds []*graph.State, pos int) frontier {
	result := newFrontier(e.g.NumStates())
	visited := make(map[*graph.State]bool, len(seeds)*2)
	stack := append([]*graph.State(nil), seeds...)

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[s] {
			continue
		}
		visited[s] = true

		switch s.KindOf() {
		case graph.Epsilon:
			result.add(s.ID())
			stack = append(stack, s.Succs()...)
		case graph.Lookahead:
			result.add(s.ID())
			start, end, negative := s.LookaheadSub()
			matched := e.acceptsFromHere(start, end, pos)
			if matched != negative {
				stack = append(stack, s.Succs()...)
			}
		case graph.Macro:
			result.add(s.ID())
			start, end, consumes := s.MacroSub()
			if consumes {
				stack = append(stack, start)
			} else if e.acceptsFromHere(start, end, pos) {
				stack = append(stack, s.Succs()...)
			}
		default:
			// Any/Symbol/Range/Class: these are the frontier's actual
			// members once input is consumed; closure stops here.
			result.add(s.ID())
		}
	}
	return result
}

// acceptsFromHere reports whether the sub-automaton bounded by
// (start, end) would accept some prefix of the input starting at pos —
// the semantics a Lookahead state asserts over. It runs an independent
// nested simulation; it never advances the enclosing executor's own
// position or frontier.
func (e *Executor) acceptsFromHere(start, end *graph.State, pos int) bool {
	fr := e.closure([]*graph.State{start}, pos)
	if fr.has(end.ID()) {
		return true
	}
	for i := pos; i < len(e.input) && !fr.isEmpty(); i++ {
		fr = e.advance(fr, e.input[i], i+1)
		if fr.has(end.ID()) {
			return true
		}
	}
	return false
}
