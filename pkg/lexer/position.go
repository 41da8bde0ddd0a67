package lexer

import "fmt"

type Position struct {
	Line   int
	Column int
	Offset int
}

// Returns a string representation of the Position as line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
