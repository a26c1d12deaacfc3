package syntax

import (
	"strings"
	"unicode/utf8"

	radix "github.com/armon/go-radix"
)

// Character sets behind the shorthand classes.
const (
	DigitChars = "0123456789"
	WordChars  = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	SpaceChars = " \f\n\r\t\v"
)

type staticToken struct {
	kind  Kind
	class Class
}

// staticTokens holds the operators, the wildcard and the shorthand classes.
// Lookups use the longest key that prefixes the remaining input, so single
// character operators and two character classes never shadow each other.
var staticTokens = newStaticTable()

func newStaticTable() *radix.Tree {
	tree := radix.New()

	tree.Insert(".", staticToken{kind: Wildcard, class: Class{Any: true}})

	tree.Insert(`\d`, staticToken{kind: CharClass, class: Class{Members: DigitChars}})
	tree.Insert(`\D`, staticToken{kind: CharClass, class: Class{Members: DigitChars, Negate: true}})
	tree.Insert(`\w`, staticToken{kind: CharClass, class: Class{Members: WordChars}})
	tree.Insert(`\W`, staticToken{kind: CharClass, class: Class{Members: WordChars, Negate: true}})
	tree.Insert(`\s`, staticToken{kind: CharClass, class: Class{Members: SpaceChars}})
	tree.Insert(`\S`, staticToken{kind: CharClass, class: Class{Members: SpaceChars, Negate: true}})

	for _, k := range []Kind{Alternation, ZeroOrOne, ZeroOrMore, OneOrMore, GroupOpen, GroupClose} {
		tree.Insert(k.String(), staticToken{kind: k})
	}

	return tree
}

type lexer struct {
	src      string
	pos      int
	lexemes  []*Lexeme
	warnings *Warnings
}

// Parse splits a regex into lexemes and tokens. It never fails: a trailing
// backslash or an unclosed bracket is recorded in the returned warnings and
// the scan carries on.
func Parse(source string) ([]*Lexeme, []*Token, *Warnings) {
	l := &lexer{
		src:      source,
		warnings: NewWarnings(),
	}

	var tokens []*Token
	for l.pos < len(l.src) {
		tokens = append(tokens, l.next())
	}

	return l.lexemes, tokens, l.warnings
}

func (l *lexer) next() *Token {
	pos := l.pos
	index := len(l.lexemes)
	rest := l.src[pos:]

	if rest[0] == '[' {
		return l.readBracketExpression()
	}

	if key, v, ok := staticTokens.LongestPrefix(rest); ok {
		st := v.(staticToken)
		return l.emit(&Token{Label: key, Kind: st.kind, Pos: pos, Index: index, End: index, Class: st.class})
	}

	if rest[0] == '\\' {
		if len(rest) == 1 {
			tok := &Token{
				Label:   `\`,
				Kind:    EscapedChar,
				Pos:     pos,
				Index:   index,
				End:     index,
				Class:   Class{Any: true},
				Invalid: true,
			}
			l.emit(tok)
			warn(l.warnings, l.lexemes, TrailingBackslash, pos, index, "")
			return tok
		}
		r, size := utf8.DecodeRuneInString(rest[1:])
		return l.emit(&Token{
			Label: rest[:1+size],
			Kind:  EscapedChar,
			Pos:   pos,
			Index: index,
			End:   index,
			Class: Class{Members: string(r)},
		})
	}

	r, size := utf8.DecodeRuneInString(rest)
	return l.emit(&Token{
		Label: rest[:size],
		Kind:  CharLiteral,
		Pos:   pos,
		Index: index,
		End:   index,
		Class: Class{Members: string(r)},
	})
}

// emit adds the single lexeme of a token and moves past it.
func (l *lexer) emit(tok *Token) *Token {
	l.addLexeme(tok.Label, tok.Kind, tok.Pos)
	l.pos += len(tok.Label)
	return tok
}

func (l *lexer) addLexeme(label string, kind Kind, pos int) *Lexeme {
	lex := &Lexeme{
		Label: label,
		Kind:  kind,
		Pos:   pos,
		Index: len(l.lexemes),
		Style: StyleOf(kind),
	}
	l.lexemes = append(l.lexemes, lex)
	return lex
}

// memberSet collects bracket members in insertion order without duplicates.
// Ranges are kept as pairs.
type memberSet struct {
	seen   map[rune]bool
	sb     strings.Builder
	ranges []RuneRange
	body   strings.Builder
}

func (s *memberSet) add(r rune) {
	s.body.WriteRune(r)
	if s.seen == nil {
		s.seen = make(map[rune]bool)
	}
	if s.seen[r] {
		return
	}
	s.seen[r] = true
	s.sb.WriteRune(r)
}

// addRange records lo-hi. A reversed range matches nothing.
func (s *memberSet) addRange(lo, hi rune) {
	s.body.WriteRune(lo)
	s.body.WriteByte('-')
	s.body.WriteRune(hi)
	if lo <= hi {
		s.ranges = append(s.ranges, RuneRange{Lo: lo, Hi: hi})
	}
}

func (s *memberSet) class(negate bool) Class {
	return Class{Members: s.sb.String(), Ranges: s.ranges, Negate: negate}
}

// peek returns the rune at the current position and its width.
func (l *lexer) peek() (rune, int) {
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

// eat adds the current rune as a lexeme of the given kind.
func (l *lexer) eat(kind Kind) rune {
	r, size := l.peek()
	l.addLexeme(l.src[l.pos:l.pos+size], kind, l.pos)
	l.pos += size
	return r
}

func (l *lexer) tryEat(b byte, kind Kind) bool {
	if l.pos < len(l.src) && l.src[l.pos] == b {
		l.eat(kind)
		return true
	}
	return false
}

// read adds the current rune as a bracket member.
func (l *lexer) read(members *memberSet) {
	members.add(l.eat(BracketChar))
}

func (l *lexer) tryRead(b byte, members *memberSet) bool {
	if l.pos < len(l.src) && l.src[l.pos] == b {
		l.read(members)
		return true
	}
	return false
}

// tryReadRange reads lo-hi when the dash is followed by anything but the
// closing bracket.
func (l *lexer) tryReadRange(members *memberSet) bool {
	lo, loSize := l.peek()
	dashPos := l.pos + loSize
	if dashPos >= len(l.src) || l.src[dashPos] != '-' {
		return false
	}
	highPos := dashPos + 1
	if highPos >= len(l.src) || l.src[highPos] == ']' {
		return false
	}
	hi, _ := utf8.DecodeRuneInString(l.src[highPos:])

	members.addRange(lo, hi)

	l.eat(BracketRangeLow)
	l.eat(BracketRangeDash)
	l.eat(BracketRangeHigh)
	return true
}

// readBracketExpression scans [...] into one lexeme per character and a
// single bracket class token. ] and - are literal in first position only.
func (l *lexer) readBracketExpression() *Token {
	start := l.pos
	begin := len(l.lexemes)
	var members memberSet

	l.eat(BracketOpen)
	negate := l.tryEat('^', BracketNegate)

	if !l.tryRead(']', &members) {
		l.tryRead('-', &members)
	}

	for l.pos < len(l.src) && l.src[l.pos] != ']' {
		if !l.tryReadRange(&members) {
			l.read(&members)
		}
	}

	label := l.src[start:l.pos] + "]"
	matches := members.body.String()

	describe := func(lex *Lexeme, end int) {
		lex.Span = &Span{Begin: begin, End: end}
		lex.Negate = negate
		lex.Matches = matches
	}

	var end int
	if l.pos < len(l.src) {
		end = len(l.lexemes)
		l.eat(BracketClose)
		describe(l.lexemes[end], end)
	} else {
		end = len(l.lexemes) - 1
		warn(l.warnings, l.lexemes, UnclosedBracket, start, begin, "")
	}
	describe(l.lexemes[begin], end)

	return &Token{
		Label: label,
		Kind:  BracketClass,
		Pos:   start,
		Index: begin,
		End:   end,
		Class: members.class(negate),
	}
}
