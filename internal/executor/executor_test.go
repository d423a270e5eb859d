package executor

import (
	"testing"

	"github.com/regraph/nfarex/internal/builder"
	"github.com/regraph/nfarex/internal/graph"
	"github.com/regraph/nfarex/internal/logging"
	"github.com/regraph/nfarex/internal/optimizer"
)

func build(t *testing.T, fn func(b *builder.Builder)) *graph.Graph {
	t.Helper()
	log := logging.New(false)
	b := builder.New(log)
	fn(b)
	g, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish() = %v", err)
	}
	optimizer.Run(g, log)
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants() = %v", err)
	}
	return g
}

func TestRunLiteralConcatenation(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		b.PushSymbol('a')
		b.PushSymbol('b')
		b.PushSymbol('c')
	})
	cases := map[string]bool{"abc": true, "ab": false, "abcd": false, "xbc": false, "": false}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunAlternation(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		must(t, b.BeginGroup())
		b.PushSymbol('a')
		must(t, b.PushBranch())
		b.PushSymbol('b')
		must(t, b.EndGroup())
	})
	cases := map[string]bool{"a": true, "b": true, "c": false, "ab": false, "": false}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunOptional(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		b.PushSymbol('a')
		b.PushOptional()
		b.PushSymbol('b')
	})
	cases := map[string]bool{"b": true, "ab": true, "aab": false, "a": false, "": false}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunStarAndPlus(t *testing.T) {
	star := build(t, func(b *builder.Builder) {
		b.PushSymbol('a')
		b.PushStar()
	})
	starCases := map[string]bool{"": true, "a": true, "aaaa": true, "b": false, "aaab": false}
	for input, want := range starCases {
		if got := Run(star, []byte(input), logging.New(false)); got != want {
			t.Errorf("star Run(%q) = %v, want %v", input, got, want)
		}
	}

	plus := build(t, func(b *builder.Builder) {
		b.PushSymbol('a')
		b.PushPlus()
	})
	plusCases := map[string]bool{"": false, "a": true, "aaaa": true, "aaab": false}
	for input, want := range plusCases {
		if got := Run(plus, []byte(input), logging.New(false)); got != want {
			t.Errorf("plus Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunBoundedRepeat(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		b.PushSymbol('a')
		must(t, b.PushRepeat(2, 3))
	})
	cases := map[string]bool{"": false, "a": false, "aa": true, "aaa": true, "aaaa": false}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunUnboundedRepeatFromMin(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		b.PushSymbol('a')
		must(t, b.PushRepeat(2, 0))
	})
	cases := map[string]bool{"": false, "a": false, "aa": true, "aaa": true, "aaaaaa": true}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunAny(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		b.PushAny()
		b.PushAny()
	})
	cases := map[string]bool{"ab": true, "xy": true, "a": false, "abc": false}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunClass(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		b.PushClass(graph.DigitClass())
		b.PushPlus()
	})
	cases := map[string]bool{"1": true, "1234": true, "": false, "12a": false, "a": false}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunPositiveLookahead(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		b.PushSymbol('a')
		must(t, b.BeginLookahead(false))
		b.PushSymbol('b')
		must(t, b.EndLookahead())
		b.PushSymbol('b')
	})
	cases := map[string]bool{"ab": true, "ac": false, "a": false}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunNegativeLookahead(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		b.PushSymbol('a')
		must(t, b.BeginLookahead(true))
		b.PushSymbol('b')
		must(t, b.EndLookahead())
		b.PushAny()
	})
	cases := map[string]bool{"ac": true, "ab": false}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunMacroSplice(t *testing.T) {
	g := build(t, func(b *builder.Builder) {
		must(t, b.BeginMacro(true))
		b.PushClass(graph.DigitClass())
		b.PushPlus()
		must(t, b.EndMacro())
		b.PushSymbol('-')
	})
	cases := map[string]bool{"12-": true, "-": false, "12": false, "1a-": false}
	for input, want := range cases {
		if got := Run(g, []byte(input), logging.New(false)); got != want {
			t.Errorf("Run(%q) = %v, want %v", input, got, want)
		}
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
