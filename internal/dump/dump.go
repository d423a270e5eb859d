// Package dump renders a compiled graph.Graph as a literal Go source
// declaration, the way a golden-file snapshot captures expected output
// for a later diff. It is never consulted during matching — Accept and
// MatchBytes never import this package — it exists purely so a
// compiled pattern's shape can be inspected, diffed across commits, or
// embedded in a bug report.
package dump

import (
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/regraph/nfarex/internal/graph"
)

// State is the serializable snapshot of one graph.State: enough to
// reconstruct the shape of the automaton (which states, which edges,
// which kind) without round-tripping through the builder.
type State struct {
	ID      int
	Kind    string
	Succs   []int
	Sym     byte
	Lo, Hi  byte
	Negated bool
	Name    string
}

// Snapshot walks g.States() in ID order and captures each one.
func Snapshot(g *graph.Graph) []State {
	states := g.States()
	out := make([]State, 0, len(states))
	for _, s := range states {
		st := State{ID: s.ID(), Kind: s.KindOf().String()}
		for _, succ := range s.Succs() {
			st.Succs = append(st.Succs, succ.ID())
		}
		switch s.KindOf() {
		case graph.Symbol:
			st.Sym = s.Sym()
		case graph.Range:
			st.Lo, st.Hi = s.RangeBounds()
		case graph.Class:
			st.Name = s.ClassPredicate().Name()
		case graph.Lookahead:
			_, _, neg := s.LookaheadSub()
			st.Negated = neg
		}
		out = append(out, st)
	}
	return out
}

// statePkgPath is the import path callers need for the State type
// referenced by the generated declaration.
const statePkgPath = "github.com/regraph/nfarex/internal/dump"

// WriteGoFile renders g's snapshot as a `var <varName> = []dump.State{...}`
// declaration in package pkgName, writing the generated source to w.
func WriteGoFile(w io.Writer, pkgName, varName string, g *graph.Graph) error {
	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by the nfarex graph dump tool. DO NOT EDIT.")

	states := Snapshot(g)
	items := make([]jen.Code, 0, len(states))
	for _, s := range states {
		items = append(items, jen.Values(jen.Dict{
			jen.Id("ID"):      jen.Lit(s.ID),
			jen.Id("Kind"):    jen.Lit(s.Kind),
			jen.Id("Succs"):   literalIntSlice(s.Succs),
			jen.Id("Sym"):     jen.Lit(s.Sym),
			jen.Id("Lo"):      jen.Lit(s.Lo),
			jen.Id("Hi"):      jen.Lit(s.Hi),
			jen.Id("Negated"): jen.Lit(s.Negated),
			jen.Id("Name"):    jen.Lit(s.Name),
		}))
	}

	f.Var().Id(varName).Op("=").Index().Qual(statePkgPath, "State").Values(items...)
	return f.Render(w)
}

func literalIntSlice(ids []int) *jen.Statement {
	vals := make([]jen.Code, len(ids))
	for i, id := range ids {
		vals[i] = jen.Lit(id)
	}
	return jen.Index().Int().Values(vals...)
}
