package syntax

import (
	"strings"
)

// NoPos marks tokens that have no counterpart in the source, such as
// implicit concatenations.
const NoPos = -1

// Span is an inclusive range of lexeme indexes.
type Span struct {
	Begin int `json:"begin" yaml:"begin"`
	End   int `json:"end" yaml:"end"`
}

// Lexeme is the display unit of a regex. Concatenating the labels of all
// lexemes in index order gives back the source string.
//
// Fields are filled in by successive stages:
//   - Label, Kind, Pos, Index, Style: lexer
//   - Invalid: lexer and validator
//   - Span, Negate, Matches on brackets: lexer (Matches is the bracket body)
//   - Span on parentheses: RPN conversion
//   - Left, Right on operators: automaton builder
type Lexeme struct {
	Label   string
	Kind    Kind
	Pos     int
	Index   int
	Style   Style
	Invalid bool

	Span    *Span
	Negate  bool
	Matches string

	Left  *Span
	Right *Span
}

// RuneRange is an inclusive range of code points.
type RuneRange struct {
	Lo rune
	Hi rune
}

// Class is the set of characters a value token accepts: single members
// plus bracket ranges, which are never expanded.
type Class struct {
	Members string
	Ranges  []RuneRange
	Negate  bool
	Any     bool
}

// Match reports whether r belongs to the class.
func (c Class) Match(r rune) bool {
	if c.Any {
		return true
	}
	in := strings.ContainsRune(c.Members, r)
	for _, rg := range c.Ranges {
		if in {
			break
		}
		in = rg.Lo <= r && r <= rg.Hi
	}
	return in != c.Negate
}

// Token is the semantic unit of a regex. A bracket expression spans several
// lexemes but produces a single token.
type Token struct {
	Label string
	Kind  Kind
	Pos   int

	// Index is the index of the first lexeme of the token.
	Index int

	// End is the last lexeme of a bracket expression, or the lexeme of the
	// matching close for a group open once the RPN conversion has run.
	End int

	Class   Class
	Invalid bool

	// Added is set on closing parentheses inserted by the validator.
	Added bool
}

// Match reports whether the token accepts r. Only value tokens match.
func (t *Token) Match(r rune) bool {
	if !t.Kind.IsValue() {
		return false
	}
	return t.Class.Match(r)
}

func newOperator(kind Kind, pos, index int) *Token {
	return &Token{
		Label: kind.String(),
		Kind:  kind,
		Pos:   pos,
		Index: index,
		End:   index,
	}
}

// Labels joins the labels of a token sequence, mostly for diagnostics and
// tests.
func Labels(tokens []*Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Label)
	}
	return sb.String()
}

// Source joins lexeme labels back into the source string.
func Source(lexemes []*Lexeme) string {
	var sb strings.Builder
	for _, l := range lexemes {
		sb.WriteString(l.Label)
	}
	return sb.String()
}
