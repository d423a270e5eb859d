package parser

import "fmt"

// SyntaxError reports a malformed pattern: unbalanced parentheses, an
// invalid escape, a malformed bracket or brace expression. It carries
// the byte offset into the original pattern where the problem was
// detected, the way the teacher's compiler errors carry source
// context via fmt.Errorf wrapping.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern syntax error at offset %d: %s", e.Pos, e.Msg)
}
