package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ycandau/regexplore-v2/internal/automaton"
	"github.com/ycandau/regexplore-v2/internal/syntax"
)

// Reporter writes human readable reports, colored unless disabled.
type Reporter struct {
	w io.Writer

	label   *color.Color
	issue   *color.Color
	faint   *color.Color
	success *color.Color
	failure *color.Color
	running *color.Color
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, colored bool) *Reporter {
	r := &Reporter{
		w:       w,
		label:   color.New(color.FgYellow, color.Bold),
		issue:   color.New(color.FgRed),
		faint:   color.New(color.Faint),
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		running: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.label, r.issue, r.faint, r.success, r.failure, r.running} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Warnings writes one entry per category, in the order given.
func (r *Reporter) Warnings(list []*syntax.Warning) {
	if len(list) == 0 {
		fmt.Fprintln(r.w, "No warnings")
		return
	}

	total := 0
	for _, w := range list {
		total += len(w.Positions)
	}
	fmt.Fprintf(r.w, "%d warning(s), %d occurrence(s)\n", len(list), total)
	for _, w := range list {
		r.label.Fprintf(r.w, "%-3s", w.Label)
		fmt.Fprintf(r.w, " x%d ", w.Count)
		r.issue.Fprint(r.w, w.Issue)
		r.faint.Fprintf(r.w, " at %s\n", joinInts(w.Positions))
		fmt.Fprintf(r.w, "    %s\n", w.Message)
	}
}

// TokenInfo writes the description of one lexeme.
func (r *Reporter) TokenInfo(info syntax.Info) {
	r.label.Fprint(r.w, info.Label)
	fmt.Fprintf(r.w, " %s: %s\n", info.Type, info.Name)
	fmt.Fprintf(r.w, "    %s\n", info.Description)
	for _, field := range [][2]string{
		{"range", info.Range}, {"left", info.Left}, {"right", info.Right},
	} {
		if field[1] != "" {
			r.faint.Fprintf(r.w, "    %s: ", field[0])
			fmt.Fprintln(r.w, field[1])
		}
	}
	if info.Warning != "" {
		r.issue.Fprintf(r.w, "    %s\n", info.Warning)
	}
}

// Trace writes a run step by step.
func (r *Reporter) Trace(a *automaton.NFA, input []rune, trace []automaton.StepResult) {
	for i, step := range trace {
		char := ""
		if i > 0 && i-1 < len(input) {
			char = string(input[i-1])
		}
		fmt.Fprintf(r.w, "%3d %-2s ", i, char)
		r.state(step.State).Fprintf(r.w, "%-12s", step.State)
		fmt.Fprintf(r.w, " matching: %-8s next: %s\n", nodeLabels(a, step.Matching), nodeLabels(a, step.Next))
	}
}

func (r *Reporter) state(s automaton.RunState) *color.Color {
	switch s {
	case automaton.Success:
		return r.success
	case automaton.Failure, automaton.EndOfString:
		return r.failure
	}
	return r.running
}

func nodeLabels(a *automaton.NFA, indexes []int) string {
	var sb strings.Builder
	for _, i := range indexes {
		sb.WriteString(a.Nodes[i].Label)
	}
	return sb.String()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
