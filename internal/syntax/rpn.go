package syntax

import "fmt"

// rpnConverter runs the shunting-yard algorithm over validated tokens.
type rpnConverter struct {
	rpn       []*Token
	operators []*Token
	lexemes   []*Lexeme
}

// ToRPN converts validated tokens to reverse polish notation, inserting
// implicit concatenations (~). Concatenation binds tighter than alternation
// and quantifiers go straight to the output. A group open is emitted as a
// unary operator once its close is reached, and both parenthesis lexemes
// receive the span of the group.
func ToRPN(tokens []*Token, lexemes []*Lexeme) []*Token {
	c := &rpnConverter{lexemes: lexemes}
	var prev *Token

	for _, t := range tokens {
		if t.Invalid {
			continue
		}

		switch {
		case t.Kind.IsValue():
			c.concatIfNeeded(prev)
			c.rpn = append(c.rpn, t)

		case t.Kind == Alternation:
			c.transfer(Concat)
			c.transfer(Alternation)
			c.operators = append(c.operators, t)

		case t.Kind.IsQuantifier():
			c.rpn = append(c.rpn, t)

		case t.Kind == GroupOpen:
			c.concatIfNeeded(prev)
			c.operators = append(c.operators, t)

		case t.Kind == GroupClose:
			c.transfer(Concat)
			c.transfer(Alternation)
			c.closeGroup(t)

		default:
			panic(fmt.Sprintf("rpn: unexpected token kind %s", t.Kind))
		}
		prev = t
	}

	c.transfer(Concat)
	c.transfer(Alternation)

	return c.rpn
}

// endsValue reports whether an implicit concatenation is needed after t.
func endsValue(t *Token) bool {
	return t != nil && t.Kind != Alternation && t.Kind != GroupOpen
}

func (c *rpnConverter) concatIfNeeded(prev *Token) {
	if !endsValue(prev) {
		return
	}
	c.transfer(Concat)
	c.operators = append(c.operators, newOperator(Concat, NoPos, NoPos))
}

// transfer moves the top operator to the output if it has the given kind.
func (c *rpnConverter) transfer(kind Kind) {
	n := len(c.operators)
	if n == 0 || c.operators[n-1].Kind != kind {
		return
	}
	c.rpn = append(c.rpn, c.operators[n-1])
	c.operators = c.operators[:n-1]
}

func (c *rpnConverter) closeGroup(closing *Token) {
	n := len(c.operators)
	if n == 0 || c.operators[n-1].Kind != GroupOpen {
		panic("rpn: group close without a matching open")
	}
	open := c.operators[n-1]
	c.operators = c.operators[:n-1]

	open.End = closing.Index
	c.rpn = append(c.rpn, open)

	c.lexemes[open.Index].Span = &Span{Begin: open.Index, End: closing.Index}
	c.lexemes[closing.Index].Span = &Span{Begin: open.Index, End: closing.Index}
}
