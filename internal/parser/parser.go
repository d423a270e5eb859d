// Package parser drives a builder.Builder from a textual pattern,
// implementing exactly the token table spec'd for the external pattern
// driver: literal, `.`, `(`, `)`, `|`, `+`, `*`, `?`, `{m,n}`, `\d`,
// `\w`, `\s`, and bracket expressions. `)` invokes EndGroup, following
// the specification rather than the source bug it documents.
package parser

import (
	"github.com/regraph/nfarex/internal/builder"
	"github.com/regraph/nfarex/internal/graph"
	"github.com/regraph/nfarex/internal/lexer"
)

type parser struct {
	lex *lexer.Lexer
	b   *builder.Builder
	tok lexer.Token
}

// Parse drives b through the full sequence of builder operations
// spec'd by pattern, leaving the top-level frame open for the caller
// to close with Builder.Finish.
func Parse(pattern string, b *builder.Builder) error {
	p := &parser{lex: lexer.New(pattern), b: b}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.parseAlternation(lexer.EOF); err != nil {
		return err
	}
	if p.tok.Kind != lexer.EOF {
		return &SyntaxError{Pos: p.tok.Pos, Msg: "unexpected trailing input"}
	}
	return nil
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseAlternation(closing lexer.Kind) error {
	if err := p.parseConcatenation(closing); err != nil {
		return err
	}
	for p.tok.Kind == lexer.Pipe {
		if err := p.b.PushBranch(); err != nil {
			return err
		}
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.parseConcatenation(closing); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseConcatenation(closing lexer.Kind) error {
	for p.tok.Kind != closing && p.tok.Kind != lexer.EOF && p.tok.Kind != lexer.Pipe {
		if err := p.parseAtom(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseAtom() error {
	switch p.tok.Kind {
	case lexer.Literal:
		p.b.PushSymbol(p.tok.Lit)
		if err := p.advance(); err != nil {
			return err
		}
	case lexer.Dot:
		p.b.PushAny()
		if err := p.advance(); err != nil {
			return err
		}
	case lexer.ClassDigit:
		p.b.PushClass(graph.DigitClass())
		if err := p.advance(); err != nil {
			return err
		}
	case lexer.ClassWord:
		p.b.PushClass(graph.WordClass())
		if err := p.advance(); err != nil {
			return err
		}
	case lexer.ClassSpace:
		p.b.PushClass(graph.SpaceClass())
		if err := p.advance(); err != nil {
			return err
		}
	case lexer.LBracket:
		if err := p.parseBracket(); err != nil {
			return err
		}
	case lexer.LParen:
		if err := p.parseGroup(); err != nil {
			return err
		}
	default:
		return &SyntaxError{Pos: p.tok.Pos, Msg: "unexpected token"}
	}
	return p.parseQuantifier()
}

func (p *parser) parseGroup() error {
	if err := p.advance(); err != nil { // consume '('
		return err
	}
	if err := p.b.BeginGroup(); err != nil {
		return err
	}
	if err := p.parseAlternation(lexer.RParen); err != nil {
		return err
	}
	if p.tok.Kind != lexer.RParen {
		return &SyntaxError{Pos: p.tok.Pos, Msg: "missing closing )"}
	}
	if err := p.b.EndGroup(); err != nil {
		return err
	}
	return p.advance() // consume ')'
}

func (p *parser) parseQuantifier() error {
	switch p.tok.Kind {
	case lexer.Star:
		p.b.PushStar()
		return p.advance()
	case lexer.Plus:
		p.b.PushPlus()
		return p.advance()
	case lexer.Question:
		p.b.PushOptional()
		return p.advance()
	case lexer.LBrace:
		return p.parseBraceRepeat()
	default:
		return nil
	}
}

func (p *parser) parseBraceRepeat() error {
	min, err := p.readInt()
	if err != nil {
		return err
	}
	max := min
	if p.lex.Peek() == ',' {
		p.lex.Advance()
		if p.lex.Peek() == '}' {
			max = 0
		} else if max, err = p.readInt(); err != nil {
			return err
		}
	}
	if p.lex.Peek() != '}' {
		return &SyntaxError{Pos: p.lex.Pos(), Msg: "missing closing }"}
	}
	p.lex.Advance() // consume '}'
	if err := p.b.PushRepeat(min, max); err != nil {
		return err
	}
	return p.advance()
}

func (p *parser) readInt() (int, error) {
	start := p.lex.Pos()
	n := 0
	digits := 0
	for !p.lex.AtEnd() && isDigit(p.lex.Peek()) {
		n = n*10 + int(p.lex.Advance()-'0')
		digits++
	}
	if digits == 0 {
		return 0, &SyntaxError{Pos: start, Msg: "expected a number in repetition bounds"}
	}
	return n, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseBracket reads a `[...]` / `[^...]` bracket expression directly
// off the lexer's raw cursor, since its grammar (ranges, a leading `^`,
// escaped literals) doesn't fit the single-token vocabulary.
func (p *parser) parseBracket() error {
	negate := false
	if p.lex.Peek() == '^' {
		negate = true
		p.lex.Advance()
	}
	var ranges [][2]byte
	for {
		if p.lex.AtEnd() {
			return &SyntaxError{Pos: p.lex.Pos(), Msg: "unterminated ["}
		}
		if p.lex.Peek() == ']' {
			break
		}
		lo := p.lex.Advance()
		if lo == '\\' {
			if p.lex.AtEnd() {
				return &SyntaxError{Pos: p.lex.Pos(), Msg: "dangling escape in ["}
			}
			lo = p.lex.Advance()
		}
		if p.lex.Peek() == '-' {
			peekAfterDash := p.lex.PeekAt(1)
			if peekAfterDash != 0 && peekAfterDash != ']' {
				p.lex.Advance() // consume '-'
				hi := p.lex.Advance()
				ranges = append(ranges, [2]byte{lo, hi})
				continue
			}
		}
		ranges = append(ranges, [2]byte{lo, lo})
	}
	p.lex.Advance() // consume ']'

	name := "[...]"
	if negate {
		name = "[^...]"
	}
	cc := graph.NewClassFromRanges(name, ranges)
	if negate {
		cc = cc.Negated(name)
	}
	p.b.PushClass(cc)
	return p.advance()
}
