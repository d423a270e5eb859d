// Package builder turns a sequence of pattern operations — push a
// literal, open/close a group, branch an alternative, apply a
// quantifier — into the owned state graph the optimizer and executor
// consume. Apart from the optimizer's epsilon removal, it is the only
// package that mutates a graph.Graph's topology; the executor treats the
// graph as read-only.
package builder

import (
	"github.com/regraph/nfarex/internal/graph"
	"github.com/regraph/nfarex/internal/logging"
)

// maxDepth bounds group/macro/lookahead nesting. A bare array of this
// size backs the frame stack so BeginGroup never allocates.
const maxDepth = 127

type frameKind uint8

const (
	frameTop frameKind = iota
	frameGroup
	frameMacro
	frameLookahead
)

// frame tracks one level of open group/macro/lookahead construction.
// groupStart/groupEnd are the wrapper epsilons bounding the whole
// frame — every branch pushed with PushBranch enters at groupStart and
// must reach groupEnd before the frame closes. tail is where the next
// atom in the current branch gets connected. atomStart/atomEnd bound
// the most recently completed atom in this frame, the operand a
// following quantifier (PushOptional/PushStar/PushPlus/PushRepeat)
// applies to.
type frame struct {
	kind               frameKind
	negative           bool // frameLookahead only
	consumes           bool // frameMacro only
	groupStart         *graph.State
	groupEnd           *graph.State
	tail               *graph.State
	atomStart, atomEnd *graph.State
}

// Builder constructs a graph.Graph one pattern operation at a time.
type Builder struct {
	g      *graph.Graph
	log    *logging.Logger
	stack    [maxDepth]frame
	top      int // index of the active frame
	macros   int // nesting depth of detached macro/lookahead fragments
	cap      int // effective depth cap, <= maxDepth
	maxDepth int // deepest value top has reached, for AnalyzeResult
}

// MaxDepthSeen returns the deepest group/macro/lookahead nesting this
// builder reached over its whole construction.
func (b *Builder) MaxDepthSeen() int { return b.maxDepth }

// New creates a Builder seeded with a fresh graph whose Start and
// Accept states bound the top-level frame.
func New(log *logging.Logger) *Builder {
	return NewWithCap(log, maxDepth)
}

// NewWithCap creates a Builder whose frame stack is limited to depthCap
// frames: the top-level frame plus at most depthCap-1 nested groups,
// macros, or lookaheads. depthCap must not exceed the fixed frame stack
// size of 127; values above that are silently clamped.
func NewWithCap(log *logging.Logger, depthCap int) *Builder {
	if depthCap > maxDepth || depthCap <= 0 {
		depthCap = maxDepth
	}
	g := graph.NewGraph()
	b := &Builder{g: g, log: log, cap: depthCap}
	b.stack[0] = frame{
		kind:       frameTop,
		groupStart: g.Start,
		groupEnd:   g.Accept,
		tail:       g.Start,
	}
	return b
}

// Graph returns the graph built so far. Valid to call mid-construction
// for diagnostics, but the graph is only complete once every BeginGroup
// has a matching EndGroup.
func (b *Builder) Graph() *graph.Graph { return b.g }

func (b *Builder) frame() *frame { return &b.stack[b.top] }

// connectTail wires the frame's current tail to s and advances tail to
// s, without touching atomStart/atomEnd. Used for the epsilon wrapper
// plumbing inside pushLeaf, beginFrame, and the quantifier ops.
func (b *Builder) connectTail(s *graph.State) {
	fr := b.frame()
	b.g.Connect(fr.tail, s)
	fr.tail = s
}

// pushLeaf inserts a single already-allocated state (Symbol, Any,
// Range, Class, or a spliced Macro/Lookahead) into the current frame's
// sequence, wrapped in a pair of epsilon states so a following
// quantifier has a uniform (atomStart, atomEnd) fragment to operate on
// regardless of whether the atom is a leaf or a closed group.
func (b *Builder) pushLeaf(leaf *graph.State) {
	start := b.g.NewEpsilon()
	end := b.g.NewEpsilon()
	b.connectTail(start)
	b.g.Connect(start, leaf)
	b.g.Connect(leaf, end)
	fr := b.frame()
	fr.tail = end
	fr.atomStart, fr.atomEnd = start, end
	b.log.Log("pushLeaf: kind=%s atomStart=%d atomEnd=%d", leaf.KindOf(), start.ID(), end.ID())
}

// PushAny inserts a '.'-equivalent atom matching any non-zero symbol.
func (b *Builder) PushAny() {
	b.pushLeaf(b.g.NewAny())
}

// PushSymbol inserts a literal-byte atom.
func (b *Builder) PushSymbol(c byte) {
	b.pushLeaf(b.g.NewSymbol(c))
}

// PushRange inserts an inclusive byte-range atom.
func (b *Builder) PushRange(lo, hi byte) {
	b.pushLeaf(b.g.NewRange(lo, hi))
}

// PushClass inserts a character-class atom.
func (b *Builder) PushClass(cc *graph.CharClass) {
	b.pushLeaf(b.g.NewClass(cc))
}

// BeginGroup opens a new group frame: a fresh (groupStart, groupEnd)
// pair wired into the parent's current position, with the first
// branch's tail positioned at groupStart. Returns a *CapacityError if
// nesting exceeds the fixed frame stack.
func (b *Builder) BeginGroup() error {
	return b.beginFrame(frameGroup, false, false)
}

// BeginMacro opens a macro frame: a detached sub-automaton that is not
// wired into the parent sequence until EndMacro splices it in as a
// single Macro state. consumes records whether traversing the macro
// during execution advances the input position.
func (b *Builder) BeginMacro(consumes bool) error {
	return b.beginFrame(frameMacro, false, consumes)
}

// BeginLookahead opens a lookahead frame: a detached sub-automaton
// evaluated against the remaining input without consuming it. negative
// inverts the assertion.
func (b *Builder) BeginLookahead(negative bool) error {
	return b.beginFrame(frameLookahead, negative, false)
}

func (b *Builder) beginFrame(kind frameKind, negative, consumes bool) error {
	if b.top+1 >= b.cap {
		return &CapacityError{Depth: b.top + 1, Max: b.cap - 1}
	}
	var start, end *graph.State
	if kind == frameGroup {
		start = b.g.NewEpsilon()
		end = b.g.NewEpsilon()
		b.connectTail(start)
	} else {
		// Macro/lookahead sub-automata are built detached: their own
		// Start/Accept pair, not yet reachable from the parent tail.
		start = b.g.NewEpsilon()
		end = b.g.NewEpsilon()
		b.macros++
	}
	b.top++
	if b.top > b.maxDepth {
		b.maxDepth = b.top
	}
	b.stack[b.top] = frame{
		kind:       kind,
		negative:   negative,
		consumes:   consumes,
		groupStart: start,
		groupEnd:   end,
		tail:       start,
	}
	b.log.Log("begin %v: groupStart=%d groupEnd=%d depth=%d", kind, start.ID(), end.ID(), b.top)
	return nil
}

// PushBranch closes the current alternative within the active group
// (connecting its tail to groupEnd) and opens a new one starting again
// at groupStart, implementing '|'.
func (b *Builder) PushBranch() error {
	fr := b.frame()
	b.g.Connect(fr.tail, fr.groupEnd)
	fr.tail = fr.groupStart
	return nil
}

// EndGroup closes the active group frame, making the whole group a
// single quantifiable atom (atomStart, atomEnd) = (groupStart,
// groupEnd) in the parent frame.
func (b *Builder) EndGroup() error {
	return b.endFrame(frameGroup, "EndGroup")
}

// EndMacro closes the active macro frame and splices it into the
// parent sequence as a single Macro state. The sub-automaton's own end
// is also wired with a real epsilon edge straight to the Macro state's
// outer successor, so a macro that consumes input can still resume into
// the parent sequence after its frontier has been rebuilt by Step — the
// Macro state itself is only ever entered once, at closure time, so
// nothing short of a permanent graph edge survives past the next
// consumed symbol.
func (b *Builder) EndMacro() error {
	fr := b.frame()
	if fr.kind != frameMacro {
		return &EmptyStackError{Op: "EndMacro"}
	}
	b.g.Connect(fr.tail, fr.groupEnd)
	start, end, consumes := fr.groupStart, fr.groupEnd, fr.consumes
	b.top--
	b.macros--
	b.pushLeaf(b.g.NewMacro(start, end, consumes))
	b.g.Connect(end, b.frame().atomEnd)
	return nil
}

// EndLookahead closes the active lookahead frame and splices it into
// the parent sequence as a single Lookahead state.
func (b *Builder) EndLookahead() error {
	fr := b.frame()
	if fr.kind != frameLookahead {
		return &EmptyStackError{Op: "EndLookahead"}
	}
	b.g.Connect(fr.tail, fr.groupEnd)
	start, end, negative := fr.groupStart, fr.groupEnd, fr.negative
	b.top--
	b.macros--
	b.pushLeaf(b.g.NewLookahead(negative, start, end))
	return nil
}

func (b *Builder) endFrame(want frameKind, op string) error {
	fr := b.frame()
	if fr.kind != want {
		return &EmptyStackError{Op: op}
	}
	b.g.Connect(fr.tail, fr.groupEnd)
	start, end := fr.groupStart, fr.groupEnd
	b.top--
	parent := b.frame()
	parent.tail = end
	parent.atomStart, parent.atomEnd = start, end
	return nil
}

// PushOptional applies '?' to the most recently completed atom: it may
// occur zero or one times.
func (b *Builder) PushOptional() {
	fr := b.frame()
	b.g.Connect(fr.atomStart, fr.atomEnd)
}

// PushStar applies '*' to the most recently completed atom: it may
// occur zero or more times.
func (b *Builder) PushStar() {
	fr := b.frame()
	b.g.Connect(fr.atomStart, fr.atomEnd)
	b.g.Connect(fr.atomEnd, fr.atomStart)
}

// PushPlus applies '+' to the most recently completed atom: it must
// occur one or more times.
func (b *Builder) PushPlus() {
	fr := b.frame()
	b.g.Connect(fr.atomEnd, fr.atomStart)
}

// PushRepeat applies '{min,max}' to the most recently completed atom.
// max == 0 means unbounded ("{min,}"). Expands into a chain of clones
// of the atom's fragment: min mandatory copies followed either by
// (max-min) individually-skippable optional copies, or — when
// unbounded — a self-loop on the final mandatory copy.
func (b *Builder) PushRepeat(min, max int) error {
	if max != 0 && max < min {
		return &RepeatBoundsError{Min: min, Max: max}
	}
	if max == 0 && min == 0 {
		b.PushStar()
		return nil
	}
	if max == 0 && min == 1 {
		b.PushPlus()
		return nil
	}

	fr := b.frame()
	origStart, origEnd := fr.atomStart, fr.atomEnd

	unbounded := max == 0
	count := max
	if unbounded {
		count = min
	}

	starts := make([]*graph.State, count)
	ends := make([]*graph.State, count)
	starts[0], ends[0] = origStart, origEnd
	for i := 1; i < count; i++ {
		s, e := b.g.CloneFragment(origStart, origEnd)
		b.g.Connect(ends[i-1], s)
		starts[i], ends[i] = s, e
	}

	finalEnd := b.g.NewEpsilon()
	for i := 0; i < count; i++ {
		if i >= min {
			b.g.Connect(starts[i], finalEnd)
		}
	}
	if unbounded {
		last := count - 1
		b.g.Connect(ends[last], starts[last])
	}
	b.g.Connect(ends[count-1], finalEnd)

	fr.tail = finalEnd
	fr.atomStart, fr.atomEnd = origStart, finalEnd
	b.log.Log("pushRepeat{%d,%d}: copies=%d unbounded=%v finalEnd=%d", min, max, count, unbounded, finalEnd.ID())
	return nil
}

// Finish closes the top-level frame, connecting its final tail to the
// graph's Accept state, and returns the completed graph. It is an
// error to call Finish with any group/macro/lookahead still open.
func (b *Builder) Finish() (*graph.Graph, error) {
	if b.top != 0 {
		return nil, &EmptyStackError{Op: "Finish"}
	}
	fr := b.frame()
	if fr.tail != b.g.Accept {
		b.g.Connect(fr.tail, b.g.Accept)
	}
	return b.g, nil
}
