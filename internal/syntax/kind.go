package syntax

// Kind identifies what a lexeme, token or automaton node stands for.
// The set is closed: every stage switches over it exhaustively.
type Kind int

const (
	// Values
	CharLiteral Kind = iota
	EscapedChar
	CharClass
	BracketClass
	Wildcard

	// Operators
	Alternation
	ZeroOrOne
	ZeroOrMore
	OneOrMore
	GroupOpen
	GroupClose
	Concat

	// Bracket expression parts (lexemes only)
	BracketOpen
	BracketClose
	BracketChar
	BracketRangeLow
	BracketRangeHigh
	BracketRangeDash
	BracketNegate

	// Automaton sentinels
	First
	Last
)

var kindNames = [...]string{
	CharLiteral:      "charLiteral",
	EscapedChar:      "escapedChar",
	CharClass:        "charClass",
	BracketClass:     "bracketClass",
	Wildcard:         ".",
	Alternation:      "|",
	ZeroOrOne:        "?",
	ZeroOrMore:       "*",
	OneOrMore:        "+",
	GroupOpen:        "(",
	GroupClose:       ")",
	Concat:           "~",
	BracketOpen:      "[",
	BracketClose:     "]",
	BracketChar:      "bracketChar",
	BracketRangeLow:  "bracketRangeLow",
	BracketRangeHigh: "bracketRangeHigh",
	BracketRangeDash: "-",
	BracketNegate:    "^",
	First:            "first",
	Last:             "last",
}

// String returns the short type name used in diagnostics and token info.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsValue reports whether the kind consumes one input character.
func (k Kind) IsValue() bool {
	switch k {
	case CharLiteral, EscapedChar, CharClass, BracketClass, Wildcard:
		return true
	}
	return false
}

// IsQuantifier reports whether the kind is ?, * or +.
func (k Kind) IsQuantifier() bool {
	return k == ZeroOrOne || k == ZeroOrMore || k == OneOrMore
}

// Style is the highlighting category of a lexeme.
type Style string

const (
	StyleValue        Style = "value"
	StyleValueSpecial Style = "value-special"
	StyleQuantifier   Style = "quantifier"
	StyleOperator     Style = "operator"
	StyleDelimiter    Style = "delimiter"
)

// StyleOf maps a lexeme kind to its highlighting category.
func StyleOf(k Kind) Style {
	switch k {
	case CharLiteral, EscapedChar, BracketChar:
		return StyleValue
	case CharClass, BracketRangeLow, BracketRangeHigh, Wildcard, BracketRangeDash:
		return StyleValueSpecial
	case ZeroOrOne, ZeroOrMore, OneOrMore:
		return StyleQuantifier
	case Alternation, BracketNegate:
		return StyleOperator
	case GroupOpen, GroupClose, BracketOpen, BracketClose:
		return StyleDelimiter
	}
	return ""
}
