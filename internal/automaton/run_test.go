package automaton

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexLabels(a *NFA, indexes []int) string {
	var sb strings.Builder
	for _, i := range indexes {
		sb.WriteString(a.Nodes[i].Label)
	}
	return sb.String()
}

type stepWant struct {
	state    RunState
	matching string
	next     string
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		regex string
		input string
		init  string
		steps []stepWant
	}{
		{"literals", "abc", "abc", "a", []stepWant{
			{Running, "a", "b"}, {Running, "b", "c"}, {Success, "c", ""},
		}},
		{"literals failure", "abc", "abd", "a", []stepWant{
			{Running, "a", "b"}, {Running, "b", "c"}, {Failure, "", ""},
		}},
		{"mixed", "abc|(abc)|a?bc|a*bc|a+bc", "abc", "aaababa", []stepWant{
			{Running, "aaaaa", "bbbabab"}, {Running, "bbbbb", "ccccc"}, {Success, "c", ""},
		}},
		{"mixed repeat", "abc|(abc)|a?bc|a*bc|a+bc", "aabc", "aaababa", []stepWant{
			{Running, "aaaaa", "bbbabab"}, {Running, "aa", "abab"}, {Running, "bb", "cc"}, {Success, "c", ""},
		}},
		{"mixed failure", "abc|(abc)|a?bc|a*bc|a+bc", "aax", "aaababa", []stepWant{
			{Running, "aaaaa", "bbbabab"}, {Running, "aa", "abab"}, {Failure, "", ""},
		}},

		// Alternation
		{"alternation", "abcx|abx|abcd", "abcd", "aaa", []stepWant{
			{Running, "aaa", "bbb"}, {Running, "bbb", "cxc"}, {Running, "cc", "xd"}, {Success, "d", ""},
		}},
		{"grouped alternations", "(ab|ax)(cx|cd)e", "abcde", "aa", []stepWant{
			{Running, "aa", "bx"}, {Running, "b", "cc"}, {Running, "cc", "xd"}, {Running, "d", "e"}, {Success, "e", ""},
		}},
		{"grouped alternations failure", "(ab|ax)(cx|cd)x", "abcde", "aa", []stepWant{
			{Running, "aa", "bx"}, {Running, "b", "cc"}, {Running, "cc", "xd"}, {Running, "d", "x"}, {Failure, "", ""},
		}},
		{"nested groups", "((a(b(c)))|(a(b(x))))", "abc", "aa", []stepWant{
			{Running, "aa", "bb"}, {Running, "bb", "cx"}, {Success, "c", ""},
		}},
		{"nested groups failure", "((a(b(c)))|(a(b(x))))y", "abcd", "aa", []stepWant{
			{Running, "aa", "bb"}, {Running, "bb", "cx"}, {Running, "c", "y"}, {Failure, "", ""},
		}},

		// 0 to 1
		{"optional skipped", "ab?c", "ac", "a", []stepWant{
			{Running, "a", "bc"}, {Success, "c", ""},
		}},
		{"optional taken", "ab?c", "abc", "a", []stepWant{
			{Running, "a", "bc"}, {Running, "b", "c"}, {Success, "c", ""},
		}},
		{"optional failure", "ab?c", "axc", "a", []stepWant{
			{Running, "a", "bc"}, {Failure, "", ""},
		}},
		{"optional group skipped", "a(bc)?d", "ad", "a", []stepWant{
			{Running, "a", "bd"}, {Success, "d", ""},
		}},
		{"optional group taken", "a(bc)?d", "abcd", "a", []stepWant{
			{Running, "a", "bd"}, {Running, "b", "c"}, {Running, "c", "d"}, {Success, "d", ""},
		}},
		{"optional group failure", "a(xc)?d", "abcd", "a", []stepWant{
			{Running, "a", "xd"}, {Failure, "", ""},
		}},
		{"optional group partial", "a(bx)?d", "abcd", "a", []stepWant{
			{Running, "a", "bd"}, {Running, "b", "x"}, {Failure, "", ""},
		}},

		// 0 to N
		{"star none", "ab*c", "ac", "a", []stepWant{
			{Running, "a", "bc"}, {Success, "c", ""},
		}},
		{"star one", "ab*c", "abc", "a", []stepWant{
			{Running, "a", "bc"}, {Running, "b", "bc"}, {Success, "c", ""},
		}},
		{"star two", "ab*c", "abbc", "a", []stepWant{
			{Running, "a", "bc"}, {Running, "b", "bc"}, {Running, "b", "bc"}, {Success, "c", ""},
		}},
		{"star failure", "ab*c", "abbbx", "a", []stepWant{
			{Running, "a", "bc"}, {Running, "b", "bc"}, {Running, "b", "bc"}, {Running, "b", "bc"}, {Failure, "", ""},
		}},
		{"star group none", "a(bc)*d", "ad", "a", []stepWant{
			{Running, "a", "bd"}, {Success, "d", ""},
		}},
		{"star group one", "a(bc)*d", "abcd", "a", []stepWant{
			{Running, "a", "bd"}, {Running, "b", "c"}, {Running, "c", "bd"}, {Success, "d", ""},
		}},
		{"star group two", "a(bc)*d", "abcbcd", "a", []stepWant{
			{Running, "a", "bd"}, {Running, "b", "c"}, {Running, "c", "bd"},
			{Running, "b", "c"}, {Running, "c", "bd"}, {Success, "d", ""},
		}},
		{"star group failure", "a(bc)*d", "abcx", "a", []stepWant{
			{Running, "a", "bd"}, {Running, "b", "c"}, {Running, "c", "bd"}, {Failure, "", ""},
		}},
		{"star group partial", "a(bc)*d", "abcbx", "a", []stepWant{
			{Running, "a", "bd"}, {Running, "b", "c"}, {Running, "c", "bd"}, {Running, "b", "c"}, {Failure, "", ""},
		}},

		// 1 to N
		{"plus none", "ab+c", "ac", "a", []stepWant{
			{Running, "a", "b"}, {Failure, "", ""},
		}},
		{"plus one", "ab+c", "abc", "a", []stepWant{
			{Running, "a", "b"}, {Running, "b", "bc"}, {Success, "c", ""},
		}},
		{"plus two", "ab+c", "abbc", "a", []stepWant{
			{Running, "a", "b"}, {Running, "b", "bc"}, {Running, "b", "bc"}, {Success, "c", ""},
		}},
		{"plus failure", "ab+c", "abbbx", "a", []stepWant{
			{Running, "a", "b"}, {Running, "b", "bc"}, {Running, "b", "bc"}, {Running, "b", "bc"}, {Failure, "", ""},
		}},
		{"plus group none", "a(bc)+d", "ad", "a", []stepWant{
			{Running, "a", "b"}, {Failure, "", ""},
		}},
		{"plus group one", "a(bc)+d", "abcd", "a", []stepWant{
			{Running, "a", "b"}, {Running, "b", "c"}, {Running, "c", "bd"}, {Success, "d", ""},
		}},
		{"plus group two", "a(bc)+d", "abcbcd", "a", []stepWant{
			{Running, "a", "b"}, {Running, "b", "c"}, {Running, "c", "bd"},
			{Running, "b", "c"}, {Running, "c", "bd"}, {Success, "d", ""},
		}},
		{"plus group failure", "a(bc)+d", "abcx", "a", []stepWant{
			{Running, "a", "b"}, {Running, "b", "c"}, {Running, "c", "bd"}, {Failure, "", ""},
		}},
		{"plus group partial", "a(bc)+d", "abcbx", "a", []stepWant{
			{Running, "a", "b"}, {Running, "b", "c"}, {Running, "c", "bd"}, {Running, "b", "c"}, {Failure, "", ""},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, nfa := compile(t, tt.regex)
			input := []rune(tt.input)

			r := nfa.Init()
			assert.Equal(t, Starting, r.State)
			assert.Equal(t, ">", indexLabels(nfa, r.Matching))
			assert.Equal(t, tt.init, indexLabels(nfa, r.Next))
			assert.False(t, r.ReachedLast)

			next := r.Next
			for pos, want := range tt.steps {
				r := nfa.Step(next, input, pos)
				assert.Equal(t, want.state, r.State, "state at %d", pos)
				assert.Equal(t, want.matching, indexLabels(nfa, r.Matching), "matching at %d", pos)
				assert.Equal(t, want.next, indexLabels(nfa, r.Next), "next at %d", pos)
				next = r.Next
			}
		})
	}
}

func TestRunEndOfString(t *testing.T) {
	_, nfa := compile(t, "ab*c")

	trace := nfa.Run([]rune("abb"))
	require.Len(t, trace, 4)
	last := trace[len(trace)-1]
	assert.Equal(t, EndOfString, last.State)
	assert.Equal(t, "b", indexLabels(nfa, last.Matching))
	assert.Equal(t, "bc", indexLabels(nfa, last.Next))
}

func TestRunEmptyRegex(t *testing.T) {
	_, nfa := compile(t, "")

	r := nfa.Init()
	assert.True(t, r.ReachedLast)
	assert.Empty(t, r.Next)

	trace := nfa.Run([]rune("abc"))
	assert.Len(t, trace, 1)
}

func TestRunSuccessStopsEarly(t *testing.T) {
	_, nfa := compile(t, "ab")

	trace := nfa.Run([]rune("abxyz"))
	require.Len(t, trace, 3)
	assert.Equal(t, Success, trace[2].State)
	assert.True(t, trace[2].State.Done())
}

func TestStepOutOfRange(t *testing.T) {
	_, nfa := compile(t, "a")
	r := nfa.Init()

	assert.Equal(t, Failure, nfa.Step(r.Next, []rune("a"), 1).State)
	assert.Equal(t, Failure, nfa.Step(r.Next, []rune("a"), -1).State)
	assert.Equal(t, Failure, nfa.Step(r.Next, nil, 0).State)
}

func TestRunStateString(t *testing.T) {
	assert.Equal(t, "starting", Starting.String())
	assert.Equal(t, "endOfString", EndOfString.String())
	assert.Equal(t, "unknown", RunState(42).String())
	assert.False(t, Running.Done())
}

func TestClosure(t *testing.T) {
	_, nfa := compile(t, "ab*c|d")

	a := nodeByLabel(nfa, "a")
	next, last := nfa.Closure(a.Index)
	assert.Equal(t, "bc", indexLabels(nfa, next))
	assert.False(t, last)

	d := nodeByLabel(nfa, "d")
	_, last = nfa.Closure(d.Index)
	assert.True(t, last)

	first, last := nfa.Closure(0)
	assert.Equal(t, "ad", indexLabels(nfa, first))
	assert.False(t, last)

	assert.Equal(t, "abcd", indexLabels(nfa, nfa.ValueNodes()))
}
