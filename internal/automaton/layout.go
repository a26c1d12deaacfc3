package automaton

import (
	"github.com/ycandau/regexplore-v2/internal/syntax"
)

// Coord is an (x, y) position in layout units.
type Coord [2]float64

// GraphNode is a displayed NFA node.
type GraphNode struct {
	Label      string `json:"label" yaml:"label"`
	Coord      Coord  `json:"coord" yaml:"coord,flow"`
	Classes    string `json:"classes" yaml:"classes"`
	RunClasses string `json:"runClasses" yaml:"runClasses"`
	Quantifier string `json:"quantifier,omitempty" yaml:"quantifier,omitempty"`
}

// Graph is the display layout of an NFA, without quantifier nodes.
type Graph struct {
	Nodes []GraphNode `json:"nodes" yaml:"nodes"`

	// Links are one to one connections.
	Links [][2]Coord `json:"links" yaml:"links"`

	// Forks and merges start with the coordinate of the fork or merge node,
	// followed by the nodes it connects to.
	Forks  [][]Coord `json:"forks" yaml:"forks"`
	Merges [][]Coord `json:"merges" yaml:"merges"`

	// Parentheses pair the open and close of each quantified group.
	Parentheses [][2]Coord `json:"parentheses" yaml:"parentheses"`
}

var graphClasses = map[syntax.Kind]string{
	syntax.CharLiteral:  "value",
	syntax.EscapedChar:  "value-special",
	syntax.CharClass:    "value-special",
	syntax.BracketClass: "value-special",
	syntax.Wildcard:     "value-special",
	syntax.Alternation:  "operator",
	syntax.GroupOpen:    "delimiter",
	syntax.GroupClose:   "delimiter",
	syntax.First:        "first",
	syntax.Last:         "last",
}

// forkDeltaY returns the vertical offset of a fork branch, so that the
// branches are stacked by height and centered on the fork.
func forkDeltaY(heights []float64, index int) float64 {
	dy := 0.0
	sum := 0.0
	for i, h := range heights {
		if i < index {
			dy += h
		}
		sum += h
	}
	dy += heights[index] / 2
	offset := (heights[0]/2 + sum - heights[len(heights)-1]/2) / 2
	return dy - offset
}

// Layout computes the display graph of the NFA. It also sets GraphIndex on
// every displayed node.
func Layout(a *NFA) *Graph {
	// Filter the quantifiers out
	var shown []int
	for i, n := range a.Nodes {
		if n.Kind.IsQuantifier() {
			n.GraphIndex = -1
			continue
		}
		n.GraphIndex = len(shown)
		shown = append(shown, i)
	}

	g := &Graph{}
	coords := make([]Coord, len(a.Nodes))

	// Pass 1: coordinates and links, in build order so that predecessors
	// are always placed first
	for _, i := range shown {
		n := a.Nodes[i]
		d := a.links[i]

		switch {
		case n.Kind == syntax.First:
			coords[i] = Coord{0, 0}

		case d.heights != nil:
			coords[i] = coords[d.prev[0]]

		case d.forkIndex >= 0:
			fork := d.prev[0]
			c := coords[fork]
			coords[i] = Coord{c[0] + 1, c[1] + forkDeltaY(a.links[fork].heights, d.forkIndex)}

		case len(d.prev) > 1:
			x := 0.0
			for _, p := range d.prev {
				x = max(x, coords[p][0])
			}
			top := coords[d.prev[0]]
			bottom := coords[d.prev[len(d.prev)-1]]
			coords[i] = Coord{x + 1, (top[1] + bottom[1]) / 2}

		case len(d.prev) == 1:
			c := coords[d.prev[0]]
			coords[i] = Coord{c[0] + 1, c[1]}
			g.Links = append(g.Links, [2]Coord{c, coords[i]})
		}
	}

	// Pass 2: forks, merges and quantified parentheses
	for _, i := range shown {
		n := a.Nodes[i]
		d := a.links[i]

		switch {
		case d.heights != nil:
			g.Forks = append(g.Forks, collect(coords[i], d.next, coords))
		case len(d.prev) > 1:
			g.Merges = append(g.Merges, collect(coords[i], d.prev, coords))
		case n.Kind == syntax.GroupOpen && n.Quantifier != "":
			g.Parentheses = append(g.Parentheses, [2]Coord{coords[i], coords[n.Close]})
		}
	}

	g.Nodes = make([]GraphNode, len(shown))
	for gi, i := range shown {
		n := a.Nodes[i]
		classes := graphClasses[n.Kind]
		if n.Quantifier != "" {
			classes += " quantifier"
		}
		g.Nodes[gi] = GraphNode{
			Label:      n.Label,
			Coord:      coords[i],
			Classes:    classes,
			Quantifier: n.Quantifier,
		}
	}

	return g
}

func collect(head Coord, ids []int, coords []Coord) []Coord {
	out := make([]Coord, 0, len(ids)+1)
	out = append(out, head)
	for _, id := range ids {
		out = append(out, coords[id])
	}
	return out
}

// Clone returns a deep copy, so that separate runs can be highlighted
// independently.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Nodes:       append([]GraphNode(nil), g.Nodes...),
		Links:       append([][2]Coord(nil), g.Links...),
		Parentheses: append([][2]Coord(nil), g.Parentheses...),
	}
	for _, f := range g.Forks {
		c.Forks = append(c.Forks, append([]Coord(nil), f...))
	}
	for _, m := range g.Merges {
		c.Merges = append(c.Merges, append([]Coord(nil), m...))
	}
	return c
}

// MarkRun resets the run classes, marks the matching nodes as active and
// tags the last node with the run state.
func (g *Graph) MarkRun(a *NFA, r StepResult) {
	for i := range g.Nodes {
		g.Nodes[i].RunClasses = ""
	}
	for _, m := range r.Matching {
		if gi := a.Nodes[m].GraphIndex; gi >= 0 {
			g.Nodes[gi].RunClasses = "active"
		}
	}
	last := len(g.Nodes) - 1
	g.Nodes[last].RunClasses += " " + r.State.String()
}
