package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/ycandau/regexplore-v2/pkg/regexplore"
)

// Patterns stay within the syntax shared by regexplore and the standard
// library, so the generated matchers can be checked against regexp.
var testCases = []TestCase{
	{
		Name:    "Email",
		Pattern: `[-a-z0-9._+]+@[-a-z0-9.]+\.[a-z]+`,
		Input: []string{
			"me@myself.com",
			"john.doe+tag@subdomain.example.co.uk",
			"not-an-email",
			strings.Repeat("a", 1e+2) + "@b.c",
		},
	},
	{
		Name:    "Greedy",
		Pattern: `((a|b)|(k)+)*abcd`,
		Input: []string{
			strings.Repeat("a", 1e+2) + "aaaaaaabcd",
			"kkkabcd",
			"abcx",
		},
	},
	{
		Name:    "Date",
		Pattern: `\d\d\d\d-\d\d-\d\d`,
		Input: []string{
			"2025-10-05",
			"1999-12-31 and more",
			"99-1-1",
		},
	},
	{
		Name:    "URL",
		Pattern: `https?://[^ /]+(/[^ ]*)?`,
		Input: []string{
			"http://example.com",
			"https://api.github.com/repos/owner/repo",
			"ftp://example.com",
		},
	},
	{
		Name:    "Identifier",
		Pattern: `[_a-zA-Z]\w*`,
		Input: []string{
			"snake_case_42",
			"_private",
			"9lives",
		},
	},
}

var testTemplate = `
package generated

import (
	"regexp"
	"testing"
)

func Test{{ .Name }}MatchString(t *testing.T) {
	pattern := {{ quote .Pattern }}
	stdReg := regexp.MustCompile("^(?:" + pattern + ")")
	{{ $out := . }}
	{{ range $index, $input := .Input }}
	t.Run("test input {{ $index }}", func(t *testing.T) {
		input := {{ quote $input }}
		isStdMatch := stdReg.MatchString(input)
		isRegexploreMatch := {{ $out.Name }}{}.MatchString(input)
		if isStdMatch != isRegexploreMatch {
			t.Fatalf("pattern %s stdMatch - %v, regexploreMatch - %v", input, isStdMatch, isRegexploreMatch)
		}
	})

	{{ end }}
}

func Benchmark{{ .Name }}MatchString(b *testing.B) {
	pattern := {{ quote .Pattern }}
	stdReg := regexp.MustCompile("^(?:" + pattern + ")")
	{{ $out := . }}
	{{ range $index, $input := .Input }}

	b.Run("golang std {{ $index }}", func(b *testing.B) {
		b.ReportAllocs()
		input := {{ quote $input }}
		for b.Loop() {
			stdReg.MatchString(input)
		}
	})

	b.Run("regexplore {{ $index }}", func(b *testing.B) {
		b.ReportAllocs()
		input := {{ quote $input }}
		for b.Loop() {
			{{ $out.Name }}{}.MatchString(input)
		}
	})

	{{ end }}
}
`

var cwd string

func init() {
	var err error
	cwd, err = os.Getwd()
	if err != nil {
		panic(fmt.Errorf("unable to get cwd: %w", err))
	}
}

type TestCase struct {
	Name    string   `json:"name"`
	Pattern string   `json:"pattern"`
	Input   []string `json:"input"`
}

func main() {
	testTemplate, err := template.New("auto_gen_test").Funcs(map[string]interface{}{
		"quote": func(v string) string { return strconv.Quote(v) },
	}).Parse(testTemplate)

	if err != nil {
		panic(err)
	}

	outputDir := filepath.Join(cwd, "benchmarks", "generated")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		panic(err)
	}

	for _, testCase := range testCases {
		if re := regexplore.Compile(testCase.Pattern); !re.Valid() {
			panic(fmt.Errorf("curated pattern %s has warnings, fixed to %s", testCase.Pattern, re.Autofix()))
		}

		if err := regexplore.Generate(regexplore.Options{
			Pattern:    testCase.Pattern,
			Name:       testCase.Name,
			OutputFile: filepath.Join(outputDir, fmt.Sprintf("%s.go", testCase.Name)),
			Package:    "generated",
		}); err != nil {
			panic(err)
		}

		testFile, err := os.Create(filepath.Join(outputDir, fmt.Sprintf("%s_test.go", testCase.Name)))
		if err != nil {
			panic(err)
		}
		if err := testTemplate.Execute(testFile, testCase); err != nil {
			panic(err)
		}
		if err := testFile.Close(); err != nil {
			panic(err)
		}
	}

	fmt.Printf("✓ Generated %d matchers\n", len(testCases))
}
