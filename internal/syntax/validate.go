package syntax

// Validate checks the token stream in three passes and returns the tokens
// that are still valid. Defects never remove tokens from the input slice:
// offending tokens are flagged, their lexemes are marked invalid and a
// warning is recorded.
//
//  1. Parentheses: an unmatched close is dropped, an unclosed open gets an
//     implicit close appended at the end.
//  2. Empty values: alternations and quantifiers with no operand, and empty
//     parentheses, are dropped.
//  3. Quantifiers: consecutive quantifiers are folded into one, left to
//     right.
func Validate(tokens []*Token, lexemes []*Lexeme, warnings *Warnings) []*Token {
	tokens = validateParentheses(tokens, lexemes, warnings)
	validateEmptyValues(tokens, lexemes, warnings)
	validateQuantifiers(tokens, lexemes, warnings)

	valid := make([]*Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.Invalid {
			valid = append(valid, t)
		}
	}
	return valid
}

func validateParentheses(tokens []*Token, lexemes []*Lexeme, warnings *Warnings) []*Token {
	var opens []*Token

	for _, t := range tokens {
		switch t.Kind {
		case GroupOpen:
			opens = append(opens, t)
		case GroupClose:
			if len(opens) == 0 {
				warn(warnings, lexemes, UnmatchedParenthesis, t.Pos, t.Index, "")
				t.Invalid = true
				continue
			}
			opens = opens[:len(opens)-1]
		}
	}

	// Implicit closes share the position of their open, innermost first.
	// Their warnings are raised by the empty values pass.
	for i := len(opens) - 1; i >= 0; i-- {
		open := opens[i]
		closing := newOperator(GroupClose, open.Pos, open.Index)
		closing.Added = true
		tokens = append(tokens, closing)
	}

	return tokens
}

type groupState struct {
	exprIsEmpty     bool
	termIsEmpty     bool
	prevAlternation *Token
	open            *Token
}

func validateEmptyValues(tokens []*Token, lexemes []*Lexeme, warnings *Warnings) {
	var stack []groupState
	exprIsEmpty := true
	termIsEmpty := true
	var prevAlternation *Token

	for _, t := range tokens {
		if t.Invalid {
			continue
		}

		switch {
		case t.Kind.IsValue():
			exprIsEmpty = false
			termIsEmpty = false

		case t.Kind == Alternation:
			if termIsEmpty {
				warn(warnings, lexemes, EmptyBeforeAlternation, t.Pos, t.Index, "")
				t.Invalid = true
				continue
			}
			termIsEmpty = true
			prevAlternation = t

		case t.Kind.IsQuantifier():
			if termIsEmpty {
				warn(warnings, lexemes, EmptyQuantifierOperand, t.Pos, t.Index, t.Kind.String())
				t.Invalid = true
			}

		case t.Kind == GroupOpen:
			stack = append(stack, groupState{
				exprIsEmpty:     exprIsEmpty,
				termIsEmpty:     termIsEmpty,
				prevAlternation: prevAlternation,
				open:            t,
			})
			exprIsEmpty = true
			termIsEmpty = true
			prevAlternation = nil

		case t.Kind == GroupClose:
			state := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			open := state.open

			switch {
			case exprIsEmpty && t.Added:
				warn(warnings, lexemes, EmptyUnclosed, open.Pos, open.Index, "")
				open.Invalid = true
				t.Invalid = true
			case exprIsEmpty:
				warn(warnings, lexemes, EmptyParentheses, t.Pos, t.Index, "")
				lexemes[open.Index].Invalid = true
				open.Invalid = true
				t.Invalid = true
			case t.Added:
				warn(warnings, lexemes, UnclosedParenthesis, open.Pos, open.Index, "")
			}

			if prevAlternation != nil && termIsEmpty {
				warn(warnings, lexemes, EmptyAfterAlternation, prevAlternation.Pos, prevAlternation.Index, "")
				prevAlternation.Invalid = true
			}

			termIsEmpty = state.termIsEmpty && exprIsEmpty
			exprIsEmpty = state.exprIsEmpty && exprIsEmpty
			prevAlternation = state.prevAlternation
		}
	}

	if prevAlternation != nil && termIsEmpty {
		warn(warnings, lexemes, EmptyAfterAlternation, prevAlternation.Pos, prevAlternation.Index, "")
		prevAlternation.Invalid = true
	}
}

func validateQuantifiers(tokens []*Token, lexemes []*Lexeme, warnings *Warnings) {
	var prev *Token
	prevIsQuantifier := false

	for _, t := range tokens {
		if t.Invalid {
			continue
		}

		isQuantifier := t.Kind.IsQuantifier()
		if prevIsQuantifier && isQuantifier {
			pair := prev.Kind.String() + t.Kind.String()
			warn(warnings, lexemes, RedundantQuantifiers, t.Pos, t.Index, pair)
			t.Invalid = true

			switch pair {
			case "??":
				prev.Kind = ZeroOrOne
			case "++":
				prev.Kind = OneOrMore
			default:
				prev.Kind = ZeroOrMore
			}
			prev.Label = prev.Kind.String()
			continue
		}

		prev = t
		prevIsQuantifier = isQuantifier
	}
}
