package syntax

// Category is the key under which diagnostics are aggregated.
type Category string

const (
	UnclosedBracket        Category = "["
	TrailingBackslash      Category = "\\E"
	UnclosedParenthesis    Category = "("
	UnmatchedParenthesis   Category = ")"
	RedundantQuantifiers   Category = "**"
	EmptyQuantifierOperand Category = "E*"
	EmptyBeforeAlternation Category = "E|"
	EmptyAfterAlternation  Category = "|E"
	EmptyParentheses       Category = "()"
	EmptyUnclosed          Category = "(E"
)

// Warning aggregates every occurrence of one category of defect.
type Warning struct {
	Category  Category `json:"type" yaml:"type" csv:"type"`
	Label     string   `json:"label" yaml:"label" csv:"label"`
	Issue     string   `json:"issue" yaml:"issue" csv:"issue"`
	Message   string   `json:"msg" yaml:"msg" csv:"msg"`
	Count     int      `json:"count" yaml:"count" csv:"count"`
	Positions []int    `json:"positions" yaml:"positions" csv:"-"`
}

type warningText struct {
	label   string
	issue   string
	message string
}

var warningTexts = map[Category]warningText{
	UnclosedBracket: {
		label:   "[",
		issue:   "An open bracket has not been closed",
		message: "The parser is adding an implicit closing bracket.",
	},
	TrailingBackslash: {
		label:   "\\",
		issue:   "No character after backslash",
		message: "The parser is ignoring the backslash.",
	},
	UnclosedParenthesis: {
		label:   "(",
		issue:   "An open parenthesis has not been closed",
		message: "The parser is adding an implicit closing parenthesis.",
	},
	UnmatchedParenthesis: {
		label:   ")",
		issue:   "A closing parenthesis has no match",
		message: "The parser is ignoring the closing parenthesis.",
	},
	RedundantQuantifiers: {
		issue:   "Redundant quantifiers",
		message: "The parser is simplifying the quantifiers to a single one.",
	},
	EmptyQuantifierOperand: {
		issue:   "A quantifier follows an empty value",
		message: "The parser is ignoring the quantifier.",
	},
	EmptyBeforeAlternation: {
		label:   "|",
		issue:   "An alternation follows an empty value",
		message: "The parser is ignoring the alternation.",
	},
	EmptyAfterAlternation: {
		label:   "|",
		issue:   "An alternation precedes an empty value",
		message: "The parser is ignoring the alternation.",
	},
	EmptyParentheses: {
		label:   "()",
		issue:   "A pair of parentheses contains no value",
		message: "The parser is ignoring the parentheses.",
	},
	EmptyUnclosed: {
		label:   "(",
		issue:   "An open parenthesis has not been closed and is empty",
		message: "The parser is ignoring the parenthesis.",
	},
}

// Warnings holds diagnostics keyed by category, in order of first
// occurrence.
type Warnings struct {
	byCategory map[Category]*Warning
	order      []Category
}

// NewWarnings returns an empty collection.
func NewWarnings() *Warnings {
	return &Warnings{byCategory: make(map[Category]*Warning)}
}

// Get returns the warning recorded for a category.
func (w *Warnings) Get(c Category) (*Warning, bool) {
	warning, ok := w.byCategory[c]
	return warning, ok
}

// List returns the warnings in order of first occurrence.
func (w *Warnings) List() []*Warning {
	list := make([]*Warning, 0, len(w.order))
	for _, c := range w.order {
		list = append(list, w.byCategory[c])
	}
	return list
}

// Len returns the number of distinct categories.
func (w *Warnings) Len() int {
	return len(w.order)
}

// Total returns the number of individual occurrences.
func (w *Warnings) Total() int {
	total := 0
	for _, warning := range w.byCategory {
		total += len(warning.Positions)
	}
	return total
}

// add records one occurrence. The label, when not empty, overrides the
// category default; it only matters for the first occurrence.
func (w *Warnings) add(c Category, pos int, label string) {
	if existing, ok := w.byCategory[c]; ok {
		existing.Count++
		existing.Positions = append(existing.Positions, pos)
		return
	}

	text := warningTexts[c]
	if label == "" {
		label = text.label
	}
	w.byCategory[c] = &Warning{
		Category:  c,
		Label:     label,
		Issue:     text.issue,
		Message:   text.message,
		Count:     1,
		Positions: []int{pos},
	}
	w.order = append(w.order, c)
}

// warn records a diagnostic and flags the lexeme at index as invalid.
func warn(w *Warnings, lexemes []*Lexeme, c Category, pos, index int, label string) {
	lexemes[index].Invalid = true
	w.add(c, pos, label)
}
