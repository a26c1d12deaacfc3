package syntax

import "strings"

// Info describes a lexeme for display next to the regex.
type Info struct {
	Label       string `json:"label" yaml:"label"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Warning     string `json:"warning,omitempty" yaml:"warning,omitempty"`

	// Range is the content between a pair of brackets or parentheses.
	Range string `json:"range,omitempty" yaml:"range,omitempty"`
	// Left and Right are the operands of an operator.
	Left  string `json:"left,omitempty" yaml:"left,omitempty"`
	Right string `json:"right,omitempty" yaml:"right,omitempty"`
}

type staticInfo struct {
	typ         string
	name        string
	description string
	warning     string
}

// Info is looked up by kind first, then by label for shorthand classes.
var infoByKind = map[Kind]staticInfo{
	CharLiteral: {"Value", "Character literal", "Match exactly that character.", ""},
	EscapedChar: {"Value", "Escaped character", "Match exactly that character.", ""},
	Wildcard:    {"Value", "Wildcard character", "Match any character.", ""},
	Alternation: {"Operator", "Alternation operator", "Match either of the items preceding and following.", ""},
	ZeroOrOne:   {"Quantifier", "0 or 1 quantifier", "Match the preceding item 0 or 1 times.", ""},
	ZeroOrMore:  {"Quantifier", "0 to any quantifier", "Match the preceding item 0 or more times.", ""},
	OneOrMore:   {"Quantifier", "1 to any quantifier", "Match the preceding item 1 or more times.", ""},
	GroupOpen: {"Delimiter", "Left parenthesis",
		"Open a parentheses pair to manage precedence and set a capture group.", ""},
	GroupClose: {"Delimiter", "Right parenthesis",
		"Close a parentheses pair to manage precedence and set a capture group.", ""},
	BracketOpen:  {"Delimiter", "Left bracket", "Open a bracketed character class.", ""},
	BracketClose: {"Delimiter", "Right bracket", "Close a bracketed character class.", ""},
	BracketChar: {"Value", "Character literal (brackets)",
		"Add an alternative in the bracketed expression.", ""},
	BracketRangeLow: {"Value", "Range beginning",
		"Define the beginning of a character range in a bracketed expression.", ""},
	BracketRangeHigh: {"Value", "Range ending",
		"Define the ending of a character range in a bracketed expression.", ""},
	BracketRangeDash: {"Operator", "Range operator",
		"Add a character range as alternatives in a bracketed expression.",
		"Has to be neither at the end or beginning of the expression."},
	BracketNegate: {"Operator", "Negation operator",
		"Negate a bracket expression to match characters not in it.",
		"Has to be positioned as the first character in the expression."},
}

var infoByLabel = map[string]staticInfo{
	`\d`: {"Value", "Digits character class", "Match a single digit character (0-9).", ""},
	`\D`: {"Value", "Non-digits character class", "Match a single non-digit character (not 0-9).", ""},
	`\w`: {"Value", "Alphanumeric character class",
		"Match a single alphanumeric character (a-z, A-Z, 0-9, _).", ""},
	`\W`: {"Value", "Non-alphanumeric character class",
		"Match a single non-alphanumeric character (not a-z, A-Z, 0-9, _).", ""},
	`\s`: {"Value", "White space character class",
		"Match a single white space character (space, tab, line feed, carriage return, form feed, vertical tab).", ""},
	`\S`: {"Value", "Non white space character class",
		"Match a single non white space character.", ""},
}

// DefaultInfo is returned for indexes outside the regex.
var DefaultInfo = Info{
	Label:       "?",
	Name:        "Questions ...",
	Description: "Hover over any character in the regex to get information on it.",
}

// TokenInfo describes the lexeme at index, including the content of
// brackets and parentheses and the operands of operators.
func TokenInfo(lexemes []*Lexeme, index int) Info {
	if index < 0 || index >= len(lexemes) {
		return DefaultInfo
	}
	lex := lexemes[index]

	static, ok := infoByKind[lex.Kind]
	if !ok {
		static = infoByLabel[lex.Label]
	}

	info := Info{
		Label:       lex.Label,
		Type:        static.typ,
		Name:        static.name,
		Description: static.description,
		Warning:     static.warning,
	}

	if lex.Span != nil {
		// An unclosed bracket ends on its last member.
		end := lex.Span.End
		if k := lexemes[end].Kind; k == BracketClose || k == GroupClose {
			end--
		}
		info.Range = joinLabels(lexemes, lex.Span.Begin+1, end)
	}
	if lex.Left != nil {
		info.Left = joinLabels(lexemes, lex.Left.Begin, lex.Left.End)
	}
	if lex.Right != nil {
		info.Right = joinLabels(lexemes, lex.Right.Begin, lex.Right.End)
	}

	return info
}

func joinLabels(lexemes []*Lexeme, begin, end int) string {
	var sb strings.Builder
	for i := begin; i <= end && i < len(lexemes); i++ {
		if i >= 0 {
			sb.WriteString(lexemes[i].Label)
		}
	}
	return sb.String()
}
