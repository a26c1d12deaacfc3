// Package regexplore compiles regular expressions into inspectable
// automata. Every stage is exposed: lexemes for highlighting, aggregated
// warnings, the Thompson NFA with its display layout, and a simulator that
// runs one character at a time.
//
// Compilation never fails. Invalid input is recovered from, reported through
// Warnings, and Autofix returns the pattern that was actually compiled.
package regexplore

import (
	"io"

	"github.com/ycandau/regexplore-v2/internal/automaton"
	"github.com/ycandau/regexplore-v2/internal/compiler"
	"github.com/ycandau/regexplore-v2/internal/syntax"
)

type (
	Lexeme     = syntax.Lexeme
	Token      = syntax.Token
	Warning    = syntax.Warning
	Category   = syntax.Category
	TokenInfo  = syntax.Info
	Node       = automaton.Node
	NFA        = automaton.NFA
	Graph      = automaton.Graph
	GraphNode  = automaton.GraphNode
	Coord      = automaton.Coord
	RunState   = automaton.RunState
	StepResult = automaton.StepResult
)

const (
	Starting    = automaton.Starting
	Running     = automaton.Running
	Success     = automaton.Success
	Failure     = automaton.Failure
	EndOfString = automaton.EndOfString
)

// Regex is a compiled pattern.
type Regex struct {
	program *compiler.Program
}

// Compile runs the whole pipeline on a pattern.
func Compile(pattern string) *Regex {
	return &Regex{program: compiler.Analyze(pattern, nil)}
}

// CompileVerbose is Compile with every stage logged to w.
func CompileVerbose(pattern string, w io.Writer) *Regex {
	logger := compiler.NewLogger(true)
	logger.SetOutput(w)
	return &Regex{program: compiler.Analyze(pattern, logger)}
}

// Pattern returns the source pattern.
func (r *Regex) Pattern() string {
	return r.program.Pattern
}

// Lexemes returns the display units of the pattern, in source order.
func (r *Regex) Lexemes() []*Lexeme {
	return r.program.Lexemes
}

// RPN returns the valid tokens in reverse polish notation.
func (r *Regex) RPN() []*Token {
	return r.program.RPN
}

// Warnings returns the aggregated diagnostics in order of first occurrence.
func (r *Regex) Warnings() []*Warning {
	return r.program.Warnings.List()
}

// Valid reports whether the pattern compiled without any warning.
func (r *Regex) Valid() bool {
	return r.program.Warnings.Len() == 0
}

// NFA returns the compiled automaton.
func (r *Regex) NFA() *NFA {
	return r.program.NFA
}

// Graph returns the display layout of the automaton.
func (r *Regex) Graph() *Graph {
	return r.program.Graph
}

// TokenInfo describes the lexeme at index.
func (r *Regex) TokenInfo(index int) TokenInfo {
	return syntax.TokenInfo(r.program.Lexemes, index)
}

// RunGraph returns a copy of the display graph highlighting a step result:
// the matching nodes are active and the last node carries the run state.
func (r *Regex) RunGraph(result StepResult) *Graph {
	g := r.program.Graph.Clone()
	g.MarkRun(r.program.NFA, result)
	return g
}

// Autofix returns the pattern that was compiled once invalid input has been
// dropped or completed.
func (r *Regex) Autofix() string {
	return r.program.Autofix()
}

// Init starts a stepwise run.
func (r *Regex) Init() StepResult {
	return r.program.NFA.Init()
}

// Step tests the character at pos of input against the current nodes.
func (r *Regex) Step(current []int, input []rune, pos int) StepResult {
	return r.program.NFA.Step(current, input, pos)
}

// Match runs the automaton over input and returns the trace along with
// whether a prefix of input was accepted.
func (r *Regex) Match(input string) ([]StepResult, bool) {
	trace := r.program.NFA.Run([]rune(input))
	last := trace[len(trace)-1]
	return trace, last.ReachedLast || last.State == Success
}

// Labels joins the labels of the nodes at the given indexes.
func (r *Regex) Labels(indexes []int) string {
	s := ""
	for _, i := range indexes {
		s += r.program.NFA.Nodes[i].Label
	}
	return s
}
