// Package render turns compiled regexes into highlighted source, colored
// reports and exports in several formats.
package render

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/ycandau/regexplore-v2/internal/syntax"
)

var styleTokens = map[syntax.Style]chroma.TokenType{
	syntax.StyleValue:        chroma.LiteralString,
	syntax.StyleValueSpecial: chroma.LiteralStringEscape,
	syntax.StyleQuantifier:   chroma.Operator,
	syntax.StyleOperator:     chroma.Keyword,
	syntax.StyleDelimiter:    chroma.Punctuation,
}

// Tokens maps lexemes to chroma tokens. Invalid lexemes are errors.
func Tokens(lexemes []*syntax.Lexeme) []chroma.Token {
	out := make([]chroma.Token, 0, len(lexemes))
	for _, l := range lexemes {
		typ, ok := styleTokens[l.Style]
		switch {
		case l.Invalid:
			typ = chroma.Error
		case !ok:
			typ = chroma.Text
		}
		out = append(out, chroma.Token{Type: typ, Value: l.Label})
	}
	return out
}

// Highlight writes the lexemes with the named chroma style and formatter.
// Unknown names fall back to the chroma defaults.
func Highlight(w io.Writer, lexemes []*syntax.Lexeme, style, formatter string) error {
	f := formatters.Get(formatter)
	s := styles.Get(style)

	if err := f.Format(w, s, chroma.Literator(Tokens(lexemes)...)); err != nil {
		return fmt.Errorf("failed to highlight: %w", err)
	}
	return nil
}
