// Package compiler runs the regex pipeline from source to automaton and
// generates Go matchers from the result.
package compiler

import (
	"fmt"
	"go/format"
	"os"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/ycandau/regexplore-v2/internal/automaton"
	"github.com/ycandau/regexplore-v2/internal/codegen"
	"github.com/ycandau/regexplore-v2/internal/syntax"
)

// Program holds every intermediate result of compiling a pattern.
type Program struct {
	Pattern  string
	Lexemes  []*syntax.Lexeme
	Tokens   []*syntax.Token
	Valid    []*syntax.Token
	RPN      []*syntax.Token
	Warnings *syntax.Warnings
	NFA      *automaton.NFA
	Graph    *automaton.Graph
}

// Analyze runs the full pipeline on a pattern. It never fails: invalid
// input is recovered from and reported through Warnings.
func Analyze(pattern string, logger *Logger) *Program {
	p := &Program{Pattern: pattern}

	logger.Section("Lexing")
	p.Lexemes, p.Tokens, p.Warnings = syntax.Parse(pattern)
	logger.Log("Pattern: %s", pattern)
	logger.Log("Lexemes: %d, tokens: %d", len(p.Lexemes), len(p.Tokens))

	logger.Section("Validation")
	p.Valid = syntax.Validate(p.Tokens, p.Lexemes, p.Warnings)
	logger.Log("Valid tokens: %s", syntax.Labels(p.Valid))
	for _, w := range p.Warnings.List() {
		logger.Log("Warning %s x%d: %s", w.Label, w.Count, w.Issue)
	}

	logger.Section("Conversion")
	p.RPN = syntax.ToRPN(p.Valid, p.Lexemes)
	logger.Log("RPN: %s", syntax.Labels(p.RPN))

	logger.Section("Automaton")
	p.NFA = automaton.Build(p.RPN, p.Lexemes)
	p.Graph = automaton.Layout(p.NFA)
	logger.Log("Nodes: %s (%d)", p.NFA.Labels(), len(p.NFA.Nodes))
	logger.Log("Displayed: %d, links: %d, forks: %d, merges: %d",
		len(p.Graph.Nodes), len(p.Graph.Links), len(p.Graph.Forks), len(p.Graph.Merges))

	return p
}

// Autofix returns the pattern rebuilt from the valid tokens.
func (p *Program) Autofix() string {
	return syntax.Autofix(p.RPN)
}

// Config holds the configuration for code generation.
type Config struct {
	Pattern          string
	Name             string
	OutputFile       string
	Package          string
	GenerateTestFile bool     // Generate a test file checking the matcher against the simulator
	TestFileInputs   []string // Inputs for the generated test file
	Verbose          bool     // Enable verbose logging of the pipeline stages
}

// Compiler generates a Go matcher from a regex pattern.
type Compiler struct {
	config  Config
	file    *jen.File
	logger  *Logger
	program *Program
}

// New creates a compiler and runs the pipeline on the configured pattern.
func New(config Config) *Compiler {
	logger := NewLogger(config.Verbose)
	return &Compiler{
		config:  config,
		file:    jen.NewFile(config.Package),
		logger:  logger,
		program: Analyze(config.Pattern, logger),
	}
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(name string) *jen.Statement {
	return c.file.Func().
		Params(jen.Id(c.config.Name)).
		Id(name)
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	gen := newMatcherGenerator(c.program.NFA, c.logger)
	if !gen.canGenerate() {
		return fmt.Errorf("pattern has %d value states, at most %d are supported", len(gen.states), MaxStates)
	}

	c.file.HeaderComment(fmt.Sprintf("Code generated by regexplore for pattern: %s", c.config.Pattern))
	c.file.HeaderComment("DO NOT EDIT.")

	if fixed := c.program.Autofix(); fixed != c.config.Pattern {
		c.logger.Log("Pattern was fixed to: %s", fixed)
		c.file.Comment(fmt.Sprintf("Matches the fixed pattern: %s", fixed))
	}

	// Generate the main struct type
	c.file.Type().Id(c.config.Name).Struct()
	c.file.Line()

	// Generate convenience variable for direct usage
	c.file.Var().Id(fmt.Sprintf("Compiled%s", c.config.Name)).Op("=").Id(c.config.Name).Values()
	c.file.Line()

	c.method("MatchString").
		Params(jen.Id(codegen.InputName).String()).
		Params(jen.Bool()).
		Block(gen.generateMatchFunction()...)

	c.method("MatchBytes").
		Params(jen.Id(codegen.InputName).Index().Byte()).
		Params(jen.Bool()).
		Block(
			jen.Return(jen.Id(c.config.Name).Values().Dot("MatchString").Call(jen.String().Call(jen.Id(codegen.InputName)))),
		)

	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	if err := formatFile(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}

	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	return nil
}

// generateTestFile writes <output>_test.go with a table of inputs and the
// results of the step simulator on them.
func (c *Compiler) generateTestFile() error {
	inputs := c.config.TestFileInputs
	if len(inputs) == 0 {
		inputs = []string{"example"}
	}

	f := jen.NewFile(c.config.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by regexplore for pattern: %s", c.config.Pattern))
	f.HeaderComment("DO NOT EDIT.")

	cases := make([]jen.Code, 0, len(inputs))
	for _, input := range inputs {
		want := Simulate(c.program.NFA, input)
		c.logger.Log("Test input %q: %v", input, want)
		cases = append(cases, jen.Values(jen.Lit(input), jen.Lit(want)))
	}

	name := c.config.Name
	f.Func().Id(fmt.Sprintf("Test%sMatchString", codegen.UpperFirst(name))).
		Params(jen.Id("t").Op("*").Qual("testing", "T")).
		Block(
			jen.Id("tests").Op(":=").Index().Struct(
				jen.Id(codegen.InputName).String(),
				jen.Id("want").Bool(),
			).Values(cases...),
			jen.Line(),
			jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id("tests")).Block(
				jen.If(
					jen.Id("got").Op(":=").Id(name).Values().Dot("MatchString").Call(jen.Id("tt").Dot(codegen.InputName)),
					jen.Id("got").Op("!=").Id("tt").Dot("want"),
				).Block(
					jen.Id("t").Dot("Errorf").Call(
						jen.Lit("MatchString(%q) = %v, want %v"),
						jen.Id("tt").Dot(codegen.InputName), jen.Id("got"), jen.Id("tt").Dot("want"),
					),
				),
			),
		)

	path := strings.TrimSuffix(c.config.OutputFile, ".go") + "_test.go"
	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save test file: %w", err)
	}
	return formatFile(path)
}

// Simulate reports whether the NFA run on input ends in success.
func Simulate(a *automaton.NFA, input string) bool {
	trace := a.Run([]rune(input))
	last := trace[len(trace)-1]
	return last.ReachedLast || last.State == automaton.Success
}

// formatFile formats the Go source file.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
