// Package automaton builds a Thompson NFA from a regex in reverse polish
// notation, lays it out for display and runs it one character at a time.
package automaton

import (
	"github.com/ycandau/regexplore-v2/internal/syntax"
)

// Node is one state of the NFA. Value nodes consume a character, every
// other node is an epsilon transition.
type Node struct {
	Label string
	Kind  syntax.Kind
	Class syntax.Class

	// Next holds the indexes of the successors, in order.
	Next []int

	// Index is the position of the node in NFA.Nodes.
	Index int

	// TokenIndex is the lexeme the node was built from, or syntax.NoPos for
	// the sentinels.
	TokenIndex int
	Pos        int

	// Quantifier is set on the display nodes bounding a quantified operand.
	Quantifier string

	// Close is the index of the paired close node for a group open, -1
	// otherwise.
	Close int

	// GraphIndex is the index of the node in Graph.Nodes, -1 for quantifier
	// nodes which are not displayed.
	GraphIndex int
}

// IsValue reports whether the node consumes a character.
func (n *Node) IsValue() bool {
	return n.Kind.IsValue()
}

// Match reports whether a value node accepts r.
func (n *Node) Match(r rune) bool {
	return n.IsValue() && n.Class.Match(r)
}

// display holds the bookkeeping for the display graph, which bypasses the
// quantifier nodes.
type display struct {
	prev []int
	next []int

	// forkIndex is the branch number of a node directly following a fork,
	// -1 otherwise.
	forkIndex int

	// heights is set on forks only, one entry per branch.
	heights []float64
}

// NFA is the compiled automaton. Nodes[0] is the first sentinel and the
// last node is the last sentinel.
type NFA struct {
	Nodes []*Node

	links []display
}

// First returns the entry sentinel.
func (a *NFA) First() *Node {
	return a.Nodes[0]
}

// Last returns the accepting sentinel.
func (a *NFA) Last() *Node {
	return a.Nodes[len(a.Nodes)-1]
}

// Labels joins the node labels in order.
func (a *NFA) Labels() string {
	s := ""
	for _, n := range a.Nodes {
		s += n.Label
	}
	return s
}
