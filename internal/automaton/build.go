package automaton

import (
	"fmt"

	"github.com/ycandau/regexplore-v2/internal/syntax"
)

// fragmentHeight is the display height of a single value.
const fragmentHeight = 1

// fragment is a partially built automaton. Node references are arena
// indexes until the build is finished.
type fragment struct {
	first     int
	terminals []int
	nodes     []int

	// Lexeme span of the operand
	begin int
	end   int

	// Display graph
	firstGraph    int
	terminalGraph []int
	height        float64
}

type builder struct {
	arena     []*Node
	links     []display
	lexemes   []*syntax.Lexeme
	fragments []fragment
}

// Build constructs the NFA for a sequence of tokens in reverse polish
// notation. Operator lexemes receive the spans of their operands.
//
// Build panics if the sequence is malformed, which cannot happen for the
// output of syntax.ToRPN.
func Build(rpn []*syntax.Token, lexemes []*syntax.Lexeme) *NFA {
	b := &builder{lexemes: lexemes}

	b.pushValue(sentinel(syntax.First))

	for _, t := range rpn {
		switch {
		case t.Kind.IsValue():
			b.pushValue(t)
		case t.Kind == syntax.ZeroOrOne:
			b.push(b.repeat01(b.pop(), t))
		case t.Kind == syntax.ZeroOrMore:
			b.push(b.repeat0N(b.pop(), t))
		case t.Kind == syntax.OneOrMore:
			b.push(b.repeat1N(b.pop(), t))
		case t.Kind == syntax.Alternation:
			right, left := b.pop(), b.pop()
			b.push(b.alternate(left, right, t))
		case t.Kind == syntax.GroupOpen:
			b.push(b.parentheses(b.pop(), t))
		case t.Kind == syntax.Concat:
			right, left := b.pop(), b.pop()
			b.push(b.concat(left, right))
		default:
			panic(fmt.Sprintf("automaton: unexpected token kind %s", t.Kind))
		}
	}

	// The first sentinel and the regex, if not empty
	if len(b.fragments) == 2 {
		right, left := b.pop(), b.pop()
		b.push(b.concat(left, right))
	}

	b.pushValue(sentinel(syntax.Last))
	right, left := b.pop(), b.pop()
	b.push(b.concat(left, right))

	if len(b.fragments) != 1 {
		panic(fmt.Sprintf("automaton: %d fragments left after build", len(b.fragments)))
	}

	return b.finish(b.fragments[0])
}

func sentinel(kind syntax.Kind) *syntax.Token {
	return &syntax.Token{
		Label: ">",
		Kind:  kind,
		Pos:   syntax.NoPos,
		Index: syntax.NoPos,
		End:   syntax.NoPos,
	}
}

func (b *builder) push(f fragment) {
	b.fragments = append(b.fragments, f)
}

func (b *builder) pop() fragment {
	n := len(b.fragments)
	if n == 0 {
		panic("automaton: fragment stack underflow")
	}
	f := b.fragments[n-1]
	b.fragments = b.fragments[:n-1]
	return f
}

func (b *builder) newNode(t *syntax.Token) int {
	b.arena = append(b.arena, &Node{
		Label:      t.Label,
		Kind:       t.Kind,
		Class:      t.Class,
		TokenIndex: t.Index,
		Pos:        t.Pos,
		Close:      -1,
		GraphIndex: -1,
	})
	b.links = append(b.links, display{forkIndex: -1})
	return len(b.arena) - 1
}

// join concatenates index lists into a new slice.
func join(lists ...[]int) []int {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]int, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func (b *builder) connect(from, to int) {
	b.arena[from].Next = append(b.arena[from].Next, to)
}

func (b *builder) connectTerminals(f fragment, to int) {
	for _, t := range f.terminals {
		b.connect(t, to)
	}
}

func (b *builder) graphFork(fork, node, branch int) {
	b.links[fork].next = append(b.links[fork].next, node)
	b.links[node].prev = []int{fork}
	b.links[node].forkIndex = branch
}

func (b *builder) setQuantifier(f fragment, q string) {
	b.arena[f.firstGraph].Quantifier = q
	b.arena[f.terminalGraph[0]].Quantifier = q
}

func (b *builder) setOperands(t *syntax.Token, left fragment, right *fragment) {
	lex := b.lexemes[t.Index]
	lex.Left = &syntax.Span{Begin: left.begin, End: left.end}
	if right != nil {
		lex.Right = &syntax.Span{Begin: right.begin, End: right.end}
	}
}

func (b *builder) pushValue(t *syntax.Token) {
	n := b.newNode(t)
	b.push(fragment{
		first:         n,
		terminals:     []int{n},
		nodes:         []int{n},
		begin:         t.Index,
		end:           t.End,
		firstGraph:    n,
		terminalGraph: []int{n},
		height:        fragmentHeight,
	})
}

func (b *builder) concat(f1, f2 fragment) fragment {
	b.connectTerminals(f1, f2.first)
	b.links[f2.firstGraph].prev = join(f1.terminalGraph)

	return fragment{
		first:         f1.first,
		terminals:     f2.terminals,
		nodes:         join(f1.nodes, f2.nodes),
		begin:         f1.begin,
		end:           f2.end,
		firstGraph:    f1.firstGraph,
		terminalGraph: f2.terminalGraph,
		height:        max(f1.height, f2.height),
	}
}

// alternate joins two fragments under a fork. A left operand that already
// starts with a fork donates its branches, so a|b|c gives a single 3-way
// fork.
func (b *builder) alternate(f1, f2 fragment, t *syntax.Token) fragment {
	fork := b.newNode(t)
	first1 := b.arena[f1.first]
	first2 := b.arena[f2.first]
	var nodes []int

	switch {
	case first1.Kind != syntax.Alternation && first2.Kind != syntax.Alternation:
		b.connect(fork, f1.first)
		b.connect(fork, f2.first)
		nodes = join([]int{fork}, f1.nodes, f2.nodes)

		b.graphFork(fork, f1.firstGraph, 0)
		b.graphFork(fork, f2.firstGraph, 1)
		b.links[fork].heights = []float64{f1.height, f2.height}

	case first1.Kind == syntax.Alternation:
		for _, next := range first1.Next {
			b.connect(fork, next)
		}
		b.connect(fork, f2.first)
		nodes = join([]int{fork}, without(f1.nodes, f1.first), f2.nodes)

		donor := b.links[f1.first]
		for i, next := range donor.next {
			b.graphFork(fork, next, i)
		}
		b.graphFork(fork, f2.firstGraph, len(donor.next))
		b.links[fork].heights = append(append([]float64(nil), donor.heights...), f2.height)

	default:
		panic("automaton: fork merge on the right operand should not happen")
	}

	b.setOperands(t, f1, &f2)

	return fragment{
		first:         fork,
		terminals:     join(f1.terminals, f2.terminals),
		nodes:         nodes,
		begin:         f1.begin,
		end:           f2.end,
		firstGraph:    fork,
		terminalGraph: join(f1.terminalGraph, f2.terminalGraph),
		height:        f1.height + f2.height,
	}
}

func without(list []int, drop int) []int {
	out := make([]int, 0, len(list))
	for _, v := range list {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}

// repeat01 adds a fork that either enters the operand or skips it.
func (b *builder) repeat01(f fragment, t *syntax.Token) fragment {
	fork := b.newNode(t)
	b.connect(fork, f.first)
	b.setOperands(t, f, nil)
	b.setQuantifier(f, "?")

	return fragment{
		first:         fork,
		terminals:     join(f.terminals, []int{fork}),
		nodes:         join([]int{fork}, f.nodes),
		begin:         f.begin,
		end:           t.Index,
		firstGraph:    f.firstGraph,
		terminalGraph: f.terminalGraph,
		height:        f.height,
	}
}

// repeat0N adds a fork placed before the operand, looped back to from its
// terminals.
func (b *builder) repeat0N(f fragment, t *syntax.Token) fragment {
	fork := b.newNode(t)
	b.connect(fork, f.first)
	b.connectTerminals(f, fork)
	b.setOperands(t, f, nil)
	b.setQuantifier(f, "*")

	return fragment{
		first:         fork,
		terminals:     []int{fork},
		nodes:         join([]int{fork}, f.nodes),
		begin:         f.begin,
		end:           t.Index,
		firstGraph:    f.firstGraph,
		terminalGraph: f.terminalGraph,
		height:        f.height,
	}
}

// repeat1N adds a fork placed after the operand, looping back to its
// first node.
func (b *builder) repeat1N(f fragment, t *syntax.Token) fragment {
	fork := b.newNode(t)
	b.connect(fork, f.first)
	b.connectTerminals(f, fork)
	b.setOperands(t, f, nil)
	b.setQuantifier(f, "+")

	return fragment{
		first:         f.first,
		terminals:     []int{fork},
		nodes:         join(f.nodes, []int{fork}),
		begin:         f.begin,
		end:           t.Index,
		firstGraph:    f.firstGraph,
		terminalGraph: f.terminalGraph,
		height:        f.height,
	}
}

// parentheses wraps the operand between an open and a close node.
func (b *builder) parentheses(f fragment, t *syntax.Token) fragment {
	open := b.newNode(t)

	closePos := t.Pos
	if t.End >= 0 && t.End < len(b.lexemes) {
		closePos = b.lexemes[t.End].Pos
	}
	closing := b.newNode(&syntax.Token{
		Label: syntax.GroupClose.String(),
		Kind:  syntax.GroupClose,
		Pos:   closePos,
		Index: t.End,
		End:   t.End,
	})

	b.connect(open, f.first)
	b.connectTerminals(f, closing)

	b.links[f.firstGraph].prev = []int{open}
	b.links[closing].prev = join(f.terminalGraph)
	b.arena[open].Close = closing

	return fragment{
		first:         open,
		terminals:     []int{closing},
		nodes:         join([]int{open}, f.nodes, []int{closing}),
		begin:         t.Index,
		end:           t.End,
		firstGraph:    open,
		terminalGraph: []int{closing},
		height:        f.height,
	}
}

// finish lays the nodes of the final fragment out in order and rewrites
// every arena reference to a node position.
func (b *builder) finish(f fragment) *NFA {
	position := make(map[int]int, len(f.nodes))
	for i, id := range f.nodes {
		position[id] = i
	}

	remap := func(ids []int) []int {
		if ids == nil {
			return nil
		}
		out := make([]int, len(ids))
		for i, id := range ids {
			p, ok := position[id]
			if !ok {
				panic(fmt.Sprintf("automaton: node %d is not part of the final automaton", id))
			}
			out[i] = p
		}
		return out
	}

	nfa := &NFA{
		Nodes: make([]*Node, len(f.nodes)),
		links: make([]display, len(f.nodes)),
	}

	for i, id := range f.nodes {
		node := b.arena[id]
		node.Index = i
		node.Next = remap(node.Next)
		if node.Close >= 0 {
			node.Close = position[node.Close]
		}
		nfa.Nodes[i] = node

		d := b.links[id]
		nfa.links[i] = display{
			prev:      remap(d.prev),
			next:      remap(d.next),
			forkIndex: d.forkIndex,
			heights:   d.heights,
		}
	}

	return nfa
}
