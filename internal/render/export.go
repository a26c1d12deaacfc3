package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"gopkg.in/yaml.v3"

	"github.com/ycandau/regexplore-v2/internal/automaton"
	"github.com/ycandau/regexplore-v2/internal/syntax"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatDOT  = "dot"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatCSV, FormatDOT}

// TraceStep is one step of a run, flattened for export.
type TraceStep struct {
	Input    string `json:"-" yaml:"-" csv:"input"`
	Pos      int    `json:"pos" yaml:"pos" csv:"pos"`
	Char     string `json:"char" yaml:"char" csv:"char"`
	State    string `json:"state" yaml:"state" csv:"state"`
	Matching string `json:"matching" yaml:"matching" csv:"matching"`
	Next     string `json:"next" yaml:"next" csv:"next"`
}

// NewTrace flattens a run over input.
func NewTrace(a *automaton.NFA, input []rune, trace []automaton.StepResult) []TraceStep {
	out := make([]TraceStep, len(trace))
	for i, step := range trace {
		s := TraceStep{
			Input:    string(input),
			Pos:      i - 1,
			State:    step.State.String(),
			Matching: nodeLabels(a, step.Matching),
			Next:     nodeLabels(a, step.Next),
		}
		if i > 0 && i-1 < len(input) {
			s.Char = string(input[i-1])
		}
		out[i] = s
	}
	return out
}

// Run is the simulation of one input.
type Run struct {
	Input   string      `json:"input" yaml:"input"`
	Matched bool        `json:"matched" yaml:"matched"`
	Trace   []TraceStep `json:"trace" yaml:"trace"`
}

// NewRun simulates input on the NFA.
func NewRun(a *automaton.NFA, input string) Run {
	runes := []rune(input)
	trace := a.Run(runes)
	last := trace[len(trace)-1]
	return Run{
		Input:   input,
		Matched: last.ReachedLast || last.State == automaton.Success,
		Trace:   NewTrace(a, runes, trace),
	}
}

// Summary is everything exported about a compiled regex.
type Summary struct {
	Pattern  string            `json:"pattern" yaml:"pattern"`
	Autofix  string            `json:"autofix" yaml:"autofix"`
	RPN      string            `json:"rpn" yaml:"rpn"`
	Warnings []*syntax.Warning `json:"warnings" yaml:"warnings"`
	Graph    *automaton.Graph  `json:"graph" yaml:"graph"`
	Runs     []Run             `json:"runs,omitempty" yaml:"runs,omitempty"`

	NFA *automaton.NFA `json:"-" yaml:"-"`
}

// nodeRow is a displayed node flattened for CSV.
type nodeRow struct {
	Index      int     `csv:"index"`
	Label      string  `csv:"label"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
	Classes    string  `csv:"classes"`
	Quantifier string  `csv:"quantifier,omitempty"`
}

// Export writes the summary in one of the structured formats.
func Export(w io.Writer, format string, s *Summary) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	case FormatCSV:
		return WriteCSV(w, s)
	case FormatDOT:
		return WriteDOT(w, s.NFA)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// WriteCSV writes the displayed nodes, or the traces of the runs when there
// are any.
func WriteCSV(w io.Writer, s *Summary) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	var err error
	if len(s.Runs) > 0 {
		var steps []TraceStep
		for _, r := range s.Runs {
			steps = append(steps, r.Trace...)
		}
		err = enc.Encode(steps)
	} else {
		rows := make([]nodeRow, len(s.Graph.Nodes))
		for i, n := range s.Graph.Nodes {
			rows[i] = nodeRow{
				Index:      i,
				Label:      n.Label,
				X:          n.Coord[0],
				Y:          n.Coord[1],
				Classes:    n.Classes,
				Quantifier: n.Quantifier,
			}
		}
		err = enc.Encode(rows)
	}
	if err != nil {
		return fmt.Errorf("failed to encode csv: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// dotEscaper escapes a label for a quoted Graphviz string, where only the
// quote and the backslash are special.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// WriteDOT writes the full NFA, quantifier nodes included, as a Graphviz
// digraph.
func WriteDOT(w io.Writer, a *automaton.NFA) error {
	if a == nil {
		return fmt.Errorf("no automaton to export")
	}

	var sb strings.Builder
	sb.WriteString("digraph nfa {\n\trankdir=LR;\n")
	for _, n := range a.Nodes {
		shape := "circle"
		switch {
		case n.Kind == syntax.Last:
			shape = "doublecircle"
		case !n.IsValue():
			shape = "point"
			if n.Kind != syntax.First {
				shape = "diamond"
			}
		}
		fmt.Fprintf(&sb, "\tn%d [label=\"%s\" shape=%s];\n", n.Index, dotEscaper.Replace(n.Label), shape)
	}
	for _, n := range a.Nodes {
		for _, next := range n.Next {
			fmt.Fprintf(&sb, "\tn%d -> n%d;\n", n.Index, next)
		}
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
