package syntax

// Autofix rebuilds a regex from its RPN sequence. Since the sequence only
// holds valid tokens, the result is the corrected form of the source.
func Autofix(rpn []*Token) string {
	var stack []string
	pop := func() string {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return s
	}

	for _, t := range rpn {
		switch {
		case t.Kind.IsValue():
			stack = append(stack, t.Label)
		case t.Kind.IsQuantifier():
			operand := pop()
			stack = append(stack, operand+t.Label)
		case t.Kind == Alternation:
			right, left := pop(), pop()
			stack = append(stack, left+"|"+right)
		case t.Kind == GroupOpen:
			operand := pop()
			stack = append(stack, "("+operand+")")
		case t.Kind == Concat:
			right, left := pop(), pop()
			stack = append(stack, left+right)
		}
	}

	if len(stack) == 0 {
		return ""
	}
	return stack[0]
}
