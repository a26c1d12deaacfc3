package compiler

import (
	"github.com/dave/jennifer/jen"

	"github.com/ycandau/regexplore-v2/internal/automaton"
	"github.com/ycandau/regexplore-v2/internal/codegen"
)

// matcherGenerator generates a Thompson simulation of the NFA. Value nodes
// become bits of a uint64 state set and epsilon closures are precomputed,
// so the generated loop only tests characters and ORs closures together.
type matcherGenerator struct {
	nfa    *automaton.NFA
	logger *Logger

	states   []int       // NFA node index per state bit
	bits     map[int]int // NFA node index to state bit
	closures []uint64    // Closure of each state after a match
	accepts  []bool      // State reaches the last sentinel after a match

	startClosure uint64
	startAccepts bool
	usesRune     bool
}

func newMatcherGenerator(a *automaton.NFA, logger *Logger) *matcherGenerator {
	g := &matcherGenerator{
		nfa:    a,
		logger: logger,
		states: a.ValueNodes(),
		bits:   make(map[int]int),
	}
	for bit, index := range g.states {
		g.bits[index] = bit
	}
	if !g.canGenerate() {
		return g
	}

	next, last := a.Closure(0)
	g.startClosure, g.startAccepts = g.mask(next), last

	g.closures = make([]uint64, len(g.states))
	g.accepts = make([]bool, len(g.states))
	for bit, index := range g.states {
		next, last := a.Closure(index)
		g.closures[bit], g.accepts[bit] = g.mask(next), last
	}
	return g
}

func (g *matcherGenerator) canGenerate() bool {
	return len(g.states) <= MaxStates
}

func (g *matcherGenerator) mask(nodes []int) uint64 {
	var m uint64
	for _, index := range nodes {
		m |= 1 << g.bits[index]
	}
	return m
}

// generateMatchFunction generates the body of MatchString. The match is
// anchored at the start of the input and succeeds as soon as a prefix is
// accepted.
func (g *matcherGenerator) generateMatchFunction() []jen.Code {
	g.logger.Section("Code Generation")
	g.logger.Log("Generating matcher (states: %d, start: %#x)", len(g.states), g.startClosure)

	if g.startAccepts {
		g.logger.Log("Empty pattern, every input matches")
		return []jen.Code{jen.Return(jen.True())}
	}

	var transitions []jen.Code
	for bit := range g.states {
		transitions = append(transitions, g.generateStateTransition(bit)...)
	}

	loopVars := jen.Range().Id(codegen.InputName)
	if g.usesRune {
		loopVars = jen.List(jen.Id("_"), jen.Id(codegen.RuneName)).Op(":=").Range().Id(codegen.InputName)
	}

	block := []jen.Code{jen.Var().Id(codegen.NextName).Uint64()}
	block = append(block, transitions...)
	block = append(block,
		jen.Line(),
		jen.Comment("Check for dead end"),
		jen.If(jen.Id(codegen.NextName).Op("==").Lit(0)).Block(
			jen.Return(jen.False()),
		),
		jen.Id(codegen.CurrentName).Op("=").Id(codegen.NextName),
	)

	return []jen.Code{
		jen.Id(codegen.CurrentName).Op(":=").Uint64().Call(jen.Lit(g.startClosure)),
		jen.Line(),
		jen.For(loopVars).Block(block...),
		jen.Line(),
		jen.Return(jen.False()),
	}
}

// generateStateTransition generates the test of a single state.
func (g *matcherGenerator) generateStateTransition(bit int) []jen.Code {
	node := g.nfa.Nodes[g.states[bit]]
	stateBit := jen.Uint64().Call(jen.Lit(uint64(1) << bit))

	var body jen.Code
	if g.accepts[bit] {
		body = jen.Return(jen.True())
	} else {
		body = jen.Id(codegen.NextName).Op("|=").Uint64().Call(jen.Lit(g.closures[bit]))
	}

	return []jen.Code{
		jen.Comment(codegen.StateName(bit, node.Label)),
		jen.If(
			jen.Id(codegen.CurrentName).Op("&").Add(stateBit).Op("!=").Lit(0).Op("&&").Add(g.condition(node)),
		).Block(body),
	}
}

// condition generates the test of the current rune against a node class.
func (g *matcherGenerator) condition(node *automaton.Node) jen.Code {
	class := node.Class
	runes := []rune(class.Members)

	switch {
	case class.Any:
		return jen.True()
	case len(runes) == 0 && len(class.Ranges) == 0:
		return jen.Lit(class.Negate)
	}

	g.usesRune = true
	c := jen.Id(codegen.RuneName)

	if len(runes) == 1 && len(class.Ranges) == 0 {
		op := "=="
		if class.Negate {
			op = "!="
		}
		return c.Op(op).LitRune(runes[0])
	}

	var terms []jen.Code
	switch len(runes) {
	case 0:
	case 1:
		terms = append(terms, jen.Id(codegen.RuneName).Op("==").LitRune(runes[0]))
	default:
		terms = append(terms, jen.Qual("strings", "ContainsRune").Call(jen.Lit(class.Members), jen.Id(codegen.RuneName)))
	}
	for _, rg := range class.Ranges {
		terms = append(terms, jen.Parens(
			jen.Id(codegen.RuneName).Op(">=").LitRune(rg.Lo).Op("&&").Id(codegen.RuneName).Op("<=").LitRune(rg.Hi),
		))
	}

	cond := jen.Add(terms[0])
	for _, t := range terms[1:] {
		cond.Op("||").Add(t)
	}
	if len(terms) > 1 {
		cond = jen.Parens(cond)
	}
	if class.Negate {
		return jen.Op("!").Add(cond)
	}
	return cond
}
