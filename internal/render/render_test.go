package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ycandau/regexplore-v2/internal/automaton"
	"github.com/ycandau/regexplore-v2/internal/syntax"
)

type compiled struct {
	lexemes  []*syntax.Lexeme
	warnings *syntax.Warnings
	rpn      []*syntax.Token
	nfa      *automaton.NFA
	graph    *automaton.Graph
}

func compile(t *testing.T, regex string) *compiled {
	t.Helper()
	lexemes, tokens, warnings := syntax.Parse(regex)
	rpn := syntax.ToRPN(syntax.Validate(tokens, lexemes, warnings), lexemes)
	nfa := automaton.Build(rpn, lexemes)
	return &compiled{lexemes, warnings, rpn, nfa, automaton.Layout(nfa)}
}

func summary(c *compiled, regex string) *Summary {
	return &Summary{
		Pattern:  regex,
		Autofix:  syntax.Autofix(c.rpn),
		RPN:      syntax.Labels(c.rpn),
		Warnings: c.warnings.List(),
		Graph:    c.graph,
		NFA:      c.nfa,
	}
}

func TestTokens(t *testing.T) {
	c := compile(t, `a\d|(b)*)`)

	want := []chroma.Token{
		{Type: chroma.LiteralString, Value: "a"},
		{Type: chroma.LiteralStringEscape, Value: `\d`},
		{Type: chroma.Keyword, Value: "|"},
		{Type: chroma.Punctuation, Value: "("},
		{Type: chroma.LiteralString, Value: "b"},
		{Type: chroma.Punctuation, Value: ")"},
		{Type: chroma.Operator, Value: "*"},
		{Type: chroma.Error, Value: ")"},
	}
	if diff := cmp.Diff(want, Tokens(c.lexemes)); diff != "" {
		t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestHighlight(t *testing.T) {
	c := compile(t, "[a-c]+x?")

	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, c.lexemes, "monokai", "noop"))
	assert.Equal(t, "[a-c]+x?", buf.String())

	buf.Reset()
	require.NoError(t, Highlight(&buf, c.lexemes, "monokai", "terminal256"))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestReporterWarnings(t *testing.T) {
	c := compile(t, "a)b)c[")

	var buf bytes.Buffer
	NewReporter(&buf, false).Warnings(c.warnings.List())

	out := buf.String()
	assert.Contains(t, out, "2 warning(s), 3 occurrence(s)")
	assert.Contains(t, out, ")   x2 A closing parenthesis has no match at 1, 3")
	assert.Contains(t, out, "[   x1 An open bracket has not been closed at 5")
	assert.NotContains(t, out, "\x1b[")
	assert.Less(t, strings.Index(out, "[   x1"), strings.Index(out, ")   x2"))
}

func TestReporterNoWarnings(t *testing.T) {
	c := compile(t, "abc")

	var buf bytes.Buffer
	NewReporter(&buf, false).Warnings(c.warnings.List())
	assert.Equal(t, "No warnings\n", buf.String())
}

func TestReporterTokenInfo(t *testing.T) {
	c := compile(t, "ab|c")

	var buf bytes.Buffer
	NewReporter(&buf, false).TokenInfo(syntax.TokenInfo(c.lexemes, 2))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "| "))
	assert.Contains(t, out, "left: ab")
	assert.Contains(t, out, "right: c")
}

func TestReporterTrace(t *testing.T) {
	c := compile(t, "ab")
	input := []rune("ab")

	var buf bytes.Buffer
	NewReporter(&buf, false).Trace(c.nfa, input, c.nfa.Run(input))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "starting")
	assert.Contains(t, lines[1], "running")
	assert.Contains(t, lines[2], "success")
	assert.Contains(t, lines[2], "matching: b")
}

func TestNewTrace(t *testing.T) {
	c := compile(t, "ab*c")
	input := []rune("abx")

	got := NewTrace(c.nfa, input, c.nfa.Run(input))
	want := []TraceStep{
		{Input: "abx", Pos: -1, State: "starting", Matching: ">", Next: "a"},
		{Input: "abx", Pos: 0, Char: "a", State: "running", Matching: "a", Next: "bc"},
		{Input: "abx", Pos: 1, Char: "b", State: "running", Matching: "b", Next: "bc"},
		{Input: "abx", Pos: 2, Char: "x", State: "failure"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewTrace mismatch (-want +got):\n%s", diff)
	}
}

func TestExportJSON(t *testing.T) {
	c := compile(t, "ab|c)")

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatJSON, summary(c, "ab|c)")))

	var got struct {
		Pattern  string `json:"pattern"`
		Autofix  string `json:"autofix"`
		Warnings []struct {
			Type      string `json:"type"`
			Positions []int  `json:"positions"`
		} `json:"warnings"`
		Graph struct {
			Nodes []struct {
				Label string     `json:"label"`
				Coord [2]float64 `json:"coord"`
			} `json:"nodes"`
		} `json:"graph"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "ab|c)", got.Pattern)
	assert.Equal(t, "ab|c", got.Autofix)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, ")", got.Warnings[0].Type)
	assert.Equal(t, []int{4}, got.Warnings[0].Positions)
	require.Len(t, got.Graph.Nodes, 6)
	assert.Equal(t, [2]float64{1, -0.5}, got.Graph.Nodes[2].Coord)
	assert.NotContains(t, buf.String(), "runs")
}

func TestExportYAML(t *testing.T) {
	c := compile(t, "a?")

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatYAML, summary(c, "a?")))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "a?", got["pattern"])
	assert.Equal(t, "a?", got["autofix"])
	assert.Contains(t, buf.String(), "coord: [1, 0]")
}

func TestExportCSV(t *testing.T) {
	c := compile(t, "ab|c")

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatCSV, summary(c, "ab|c")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "index,label,x,y,classes,quantifier", lines[0])
	assert.Equal(t, "0,>,0,0,first,", lines[1])
	assert.Equal(t, "2,a,1,-0.5,value,", lines[3])
	assert.Len(t, lines, 7)
}

func TestExportCSVTrace(t *testing.T) {
	c := compile(t, "ab")
	s := summary(c, "ab")
	s.Runs = []Run{NewRun(c.nfa, "ab"), NewRun(c.nfa, "x")}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, s))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "input,pos,char,state,matching,next", lines[0])
	assert.Equal(t, "ab,1,b,success,b,", lines[3])
	assert.Equal(t, "x,0,x,failure,,", lines[5])
}

func TestExportDOT(t *testing.T) {
	c := compile(t, "a*")

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatDOT, summary(c, "a*")))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph nfa {"))
	assert.Contains(t, out, `n0 [label=">" shape=point];`)
	assert.Contains(t, out, `n1 [label="*" shape=diamond];`)
	assert.Contains(t, out, `n2 [label="a" shape=circle];`)
	assert.Contains(t, out, `n3 [label=">" shape=doublecircle];`)
	assert.Contains(t, out, "n2 -> n1;")
}

func TestExportDOTLabels(t *testing.T) {
	regex := `é\d"`
	c := compile(t, regex)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatDOT, summary(c, regex)))

	out := buf.String()
	assert.Contains(t, out, `[label="é" shape=circle];`)
	assert.Contains(t, out, `[label="\\d" shape=circle];`)
	assert.Contains(t, out, `[label="\"" shape=circle];`)
	assert.NotContains(t, out, `\u00e9`)
}

func TestNewRun(t *testing.T) {
	c := compile(t, "ab*")

	r := NewRun(c.nfa, "abbb")
	assert.True(t, r.Matched)
	assert.Equal(t, "success", r.Trace[len(r.Trace)-1].State)

	r = NewRun(c.nfa, "b")
	assert.False(t, r.Matched)

	assert.True(t, NewRun(compile(t, "").nfa, "zzz").Matched)
}

func TestExportUnsupported(t *testing.T) {
	c := compile(t, "a")
	err := Export(&bytes.Buffer{}, "xml", summary(c, "a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)

	assert.Error(t, WriteDOT(&bytes.Buffer{}, nil))
}
