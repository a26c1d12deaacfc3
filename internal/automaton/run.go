package automaton

import (
	"github.com/ycandau/regexplore-v2/internal/syntax"
)

// RunState is the state of a stepwise run.
type RunState int

const (
	Starting RunState = iota
	Running
	Success
	Failure
	EndOfString
)

var runStateNames = [...]string{
	Starting:    "starting",
	Running:     "running",
	Success:     "success",
	Failure:     "failure",
	EndOfString: "endOfString",
}

func (s RunState) String() string {
	if s < 0 || int(s) >= len(runStateNames) {
		return "unknown"
	}
	return runStateNames[s]
}

// Done reports whether the run cannot continue.
func (s RunState) Done() bool {
	return s == Success || s == Failure || s == EndOfString
}

// StepResult is the outcome of Init or Step.
type StepResult struct {
	State RunState

	// Matching holds the nodes that matched the character, or the first
	// sentinel after Init.
	Matching []int

	// Next holds the value nodes to test against the next character.
	Next []int

	// ReachedLast is set by Init when the last sentinel is reachable
	// without consuming anything, that is for an empty regex.
	ReachedLast bool
}

// propagate follows epsilon transitions from a node and appends the value
// nodes it reaches to out. It returns true as soon as the last sentinel is
// reached.
func (a *NFA) propagate(index int, out *[]int, visited []bool) bool {
	if visited[index] {
		return false
	}
	visited[index] = true

	node := a.Nodes[index]
	if node.Kind == syntax.Last {
		return true
	}

	if !node.IsValue() {
		for _, next := range node.Next {
			if a.propagate(next, out, visited) {
				return true
			}
		}
		return false
	}

	*out = append(*out, index)
	return false
}

// Init starts a run from the first sentinel.
func (a *NFA) Init() StepResult {
	var next []int
	visited := make([]bool, len(a.Nodes))
	reached := a.propagate(0, &next, visited)

	return StepResult{
		State:       Starting,
		Matching:    []int{0},
		Next:        next,
		ReachedLast: reached,
	}
}

// Step tests the character at pos against the current value nodes and
// propagates from those that match. The run succeeds as soon as one of
// them reaches the last sentinel. A position outside the input fails.
func (a *NFA) Step(current []int, input []rune, pos int) StepResult {
	if pos < 0 || pos >= len(input) {
		return StepResult{State: Failure}
	}

	r := input[pos]
	var next, matching []int
	visited := make([]bool, len(a.Nodes))

	for _, index := range current {
		node := a.Nodes[index]
		if !node.Match(r) {
			continue
		}
		matching = append(matching, index)

		for _, succ := range node.Next {
			if a.propagate(succ, &next, visited) {
				return StepResult{
					State:    Success,
					Matching: []int{index},
					Next:     []int{},
				}
			}
		}
	}

	switch {
	case len(matching) == 0:
		return StepResult{State: Failure, Matching: []int{}, Next: []int{}}
	case pos == len(input)-1:
		return StepResult{State: EndOfString, Matching: matching, Next: next}
	default:
		return StepResult{State: Running, Matching: matching, Next: next}
	}
}

// Closure returns the value nodes reached from the successors of a node
// without consuming a character, and whether the last sentinel is among
// them. Once the last sentinel is reached the list may be incomplete.
func (a *NFA) Closure(index int) ([]int, bool) {
	var out []int
	visited := make([]bool, len(a.Nodes))
	for _, succ := range a.Nodes[index].Next {
		if a.propagate(succ, &out, visited) {
			return out, true
		}
	}
	return out, false
}

// ValueNodes returns the indexes of the nodes that consume a character.
func (a *NFA) ValueNodes() []int {
	var out []int
	for i, n := range a.Nodes {
		if n.IsValue() {
			out = append(out, i)
		}
	}
	return out
}

// Run drives a complete run over input and returns every step, starting
// with Init.
func (a *NFA) Run(input []rune) []StepResult {
	r := a.Init()
	trace := []StepResult{r}
	if r.ReachedLast {
		return trace
	}

	for pos := 0; pos < len(input); pos++ {
		r = a.Step(r.Next, input, pos)
		trace = append(trace, r)
		if r.State.Done() {
			break
		}
	}
	return trace
}
