package automaton

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphLabels(g *Graph) string {
	var sb strings.Builder
	for _, n := range g.Nodes {
		sb.WriteString(n.Label)
	}
	return sb.String()
}

func graphNode(g *Graph, label string) *GraphNode {
	for i := range g.Nodes {
		if g.Nodes[i].Label == label {
			return &g.Nodes[i]
		}
	}
	return nil
}

func findByHead(lists [][]Coord, head Coord) []Coord {
	for _, l := range lists {
		if l[0] == head {
			return l
		}
	}
	return nil
}

type nodeAt struct {
	label string
	x, y  float64
}

func TestLayout(t *testing.T) {
	tests := []struct {
		regex  string
		labels string
		nodes  []nodeAt
		forks  [][]Coord
		merges [][]Coord
	}{
		{
			regex:  "abc",
			labels: ">abc>",
			nodes:  []nodeAt{{"a", 1, 0}, {"b", 2, 0}, {"c", 3, 0}},
		},
		{
			regex:  "ab|c",
			labels: ">|abc>",
			nodes:  []nodeAt{{"a", 1, -0.5}, {"b", 2, -0.5}, {"c", 1, 0.5}},
			forks:  [][]Coord{{{0, 0}, {1, -0.5}, {1, 0.5}}},
			merges: [][]Coord{{{3, 0}, {2, -0.5}, {1, 0.5}}},
		},
		{
			regex:  "(a|bc)d",
			labels: ">(|abc)d>",
			nodes: []nodeAt{
				{"(", 1, 0}, {"a", 2, -0.5}, {"b", 2, 0.5}, {"c", 3, 0.5}, {")", 4, 0}, {"d", 5, 0},
			},
			forks:  [][]Coord{{{1, 0}, {2, -0.5}, {2, 0.5}}},
			merges: [][]Coord{{{4, 0}, {2, -0.5}, {3, 0.5}}},
		},
		{
			regex:  "(a?|b*|(cd)+)?e",
			labels: ">(|ab(cd))e>",
			nodes: []nodeAt{
				{"(", 1, 0}, {"a", 2, -1}, {"b", 2, 0}, {"c", 3, 1}, {"d", 4, 1}, {")", 5, 1}, {"e", 7, 0},
			},
			forks:  [][]Coord{{{1, 0}, {2, -1}, {2, 0}, {2, 1}}},
			merges: [][]Coord{{{6, 0}, {2, -1}, {2, 0}, {5, 1}}},
		},
		{
			regex:  "(a|b)(c|d|e)|f(g(h|i)j)k",
			labels: ">|(|ab)(|cde)f(g(|hi)j)k>",
			nodes: []nodeAt{
				{"a", 2, -1.75}, {"b", 2, -0.75},
				{"c", 5, -2.25}, {"d", 5, -1.25}, {"e", 5, -0.25},
				{"f", 1, 1.25}, {"g", 3, 1.25}, {"h", 5, 0.75}, {"i", 5, 1.75},
				{"j", 7, 1.25}, {"k", 9, 1.25},
			},
			forks: [][]Coord{
				{{0, 0}, {1, -1.25}, {1, 1.25}},
				{{1, -1.25}, {2, -1.75}, {2, -0.75}},
				{{4, -1.25}, {5, -2.25}, {5, -1.25}, {5, -0.25}},
				{{4, 1.25}, {5, 0.75}, {5, 1.75}},
			},
			merges: [][]Coord{
				{{10, 0}, {6, -1.25}, {9, 1.25}},
				{{3, -1.25}, {2, -1.75}, {2, -0.75}},
				{{6, -1.25}, {5, -2.25}, {5, -1.25}, {5, -0.25}},
				{{6, 1.25}, {5, 0.75}, {5, 1.75}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.regex, func(t *testing.T) {
			_, nfa := compile(t, tt.regex)
			g := Layout(nfa)

			assert.Equal(t, tt.labels, graphLabels(g))

			for _, want := range tt.nodes {
				n := graphNode(g, want.label)
				require.NotNil(t, n, "node %q", want.label)
				assert.Equal(t, Coord{want.x, want.y}, n.Coord, "node %q", want.label)
			}

			for _, want := range tt.forks {
				got := findByHead(g.Forks, want[0])
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("fork at %v mismatch (-want +got):\n%s", want[0], diff)
				}
			}

			for _, want := range tt.merges {
				got := findByHead(g.Merges, want[0])
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("merge at %v mismatch (-want +got):\n%s", want[0], diff)
				}
			}
		})
	}
}

func TestLayoutClasses(t *testing.T) {
	_, nfa := compile(t, `a\.(b)*`)
	g := Layout(nfa)

	require.Equal(t, ">a\\.(b)>", graphLabels(g))

	classes := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		classes[i] = n.Classes
	}
	assert.Equal(t, []string{
		"first",
		"value",
		"value-special",
		"delimiter quantifier",
		"value",
		"delimiter quantifier",
		"last",
	}, classes)

	assert.Equal(t, "*", graphNode(g, "(").Quantifier)
	assert.Equal(t, [][2]Coord{{{3, 0}, {5, 0}}}, g.Parentheses)
}

func TestLayoutGraphIndex(t *testing.T) {
	_, nfa := compile(t, "a+b?")
	g := Layout(nfa)

	for _, n := range nfa.Nodes {
		if n.Kind.IsQuantifier() {
			assert.Equal(t, -1, n.GraphIndex)
			continue
		}
		require.GreaterOrEqual(t, n.GraphIndex, 0)
		assert.Equal(t, n.Label, g.Nodes[n.GraphIndex].Label)
	}
}

func TestForkDeltaY(t *testing.T) {
	tests := []struct {
		heights []float64
		index   int
		want    float64
	}{
		{[]float64{1, 1}, 0, -0.5},
		{[]float64{1, 1}, 1, 0.5},
		{[]float64{1, 1, 1}, 0, -1},
		{[]float64{1, 1, 1}, 2, 1},
		{[]float64{2, 3}, 0, -1.25},
		{[]float64{2, 3}, 1, 1.25},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, forkDeltaY(tt.heights, tt.index), "%v[%d]", tt.heights, tt.index)
	}
}

func TestMarkRun(t *testing.T) {
	_, nfa := compile(t, "ab|ac")
	g := Layout(nfa)

	r := nfa.Init()
	g.MarkRun(nfa, r)
	assert.Equal(t, "active", g.Nodes[0].RunClasses)
	assert.Equal(t, " starting", g.Nodes[len(g.Nodes)-1].RunClasses)

	c := g.Clone()
	r = nfa.Step(r.Next, []rune("ab"), 0)
	g.MarkRun(nfa, r)

	var active []string
	for _, n := range g.Nodes {
		if n.RunClasses == "active" {
			active = append(active, n.Label)
		}
	}
	assert.Equal(t, []string{"a", "a"}, active)
	assert.Equal(t, "", g.Nodes[0].RunClasses)
	assert.Equal(t, " running", g.Nodes[len(g.Nodes)-1].RunClasses)

	// The clone keeps the previous highlighting.
	assert.Equal(t, "active", c.Nodes[0].RunClasses)
}
