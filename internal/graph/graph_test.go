package graph

import "testing"

func TestConnectMaintainsBackEdges(t *testing.T) {
	g := NewGraph()
	a := g.NewSymbol('a')
	g.Connect(g.Start, a)
	g.Connect(a, g.Accept)

	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants() = %v, want nil", err)
	}
	if len(a.Preds()) != 1 || a.Preds()[0] != g.Start {
		t.Errorf("a.Preds() = %v, want [Start]", a.Preds())
	}
}

func TestRemoveClearsEdgesAndKeepsID(t *testing.T) {
	g := NewGraph()
	mid := g.NewEpsilon()
	g.Connect(g.Start, mid)
	g.Connect(mid, g.Accept)
	id := mid.ID()

	g.Remove(mid)

	if len(g.States()) != 2 {
		t.Fatalf("len(States()) = %d, want 2 (Start, Accept)", len(g.States()))
	}
	if g.StateByID(id) != mid {
		t.Errorf("StateByID(%d) changed identity after Remove", id)
	}
	if len(mid.Succs()) != 0 || len(mid.Preds()) != 0 {
		t.Errorf("removed state still has edges: succs=%v preds=%v", mid.Succs(), mid.Preds())
	}
}

func TestDisconnectRemovesOneOccurrence(t *testing.T) {
	g := NewGraph()
	a := g.NewEpsilon()
	b := g.NewEpsilon()
	g.Connect(a, b)
	g.Connect(a, b) // duplicate edge, multiset semantics

	g.Disconnect(a, b)

	if len(a.Succs()) != 1 {
		t.Fatalf("len(a.Succs()) = %d, want 1 after disconnecting one occurrence", len(a.Succs()))
	}
	if len(b.Preds()) != 1 {
		t.Fatalf("len(b.Preds()) = %d, want 1", len(b.Preds()))
	}
}

func TestCloneFragmentPreservesInternalCycle(t *testing.T) {
	g := NewGraph()
	start := g.NewEpsilon()
	loop := g.NewSymbol('x')
	end := g.NewEpsilon()
	g.Connect(start, loop)
	g.Connect(loop, loop) // self-loop inside the fragment
	g.Connect(loop, end)

	cs, ce := g.CloneFragment(start, end)

	if cs == start || ce == end {
		t.Fatalf("CloneFragment returned original states, want fresh clones")
	}
	if len(cs.Succs()) != 1 {
		t.Fatalf("clone start has %d succs, want 1", len(cs.Succs()))
	}
	cloneLoop := cs.Succs()[0]
	found := false
	for _, s := range cloneLoop.Succs() {
		if s == cloneLoop {
			found = true
		}
	}
	if !found {
		t.Errorf("cloned loop state lost its self-loop")
	}
}

func TestMatchSymbolByKind(t *testing.T) {
	g := NewGraph()
	sym := g.NewSymbol('a')
	rng := g.NewRange('0', '9')
	any := g.NewAny()
	cls := g.NewClass(DigitClass())

	cases := []struct {
		s        *State
		b        byte
		consumed bool
		ok       bool
	}{
		{sym, 'a', true, true},
		{sym, 'b', true, false},
		{rng, '5', true, true},
		{rng, 'x', true, false},
		{any, 0, true, false},
		{any, 'z', true, true},
		{cls, '7', true, true},
		{cls, 'z', true, false},
		{g.Start, 'a', false, false},
	}
	for _, c := range cases {
		consumed, ok := c.s.MatchSymbol(c.b)
		if consumed != c.consumed || ok != c.ok {
			t.Errorf("MatchSymbol(%q) on %v = (%v, %v), want (%v, %v)", c.b, c.s.KindOf(), consumed, ok, c.consumed, c.ok)
		}
	}
}
