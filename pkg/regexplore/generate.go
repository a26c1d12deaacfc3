package regexplore

import (
	"fmt"
	"go/token"

	"github.com/ycandau/regexplore-v2/internal/compiler"
)

// Options configures the generation of a Go matcher.
type Options struct {
	// Pattern is the regular expression to compile
	Pattern string

	// Name is the generated type (e.g., "Email" generates "Email.MatchString")
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// GenerateTestFile generates a test file checking the matcher against the simulator (default: true if TestFileInputs provided)
	GenerateTestFile bool

	// TestFileInputs is a list of inputs for the generated test file
	TestFileInputs []string

	// Verbose logs each compilation stage to stderr
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !token.IsIdentifier(o.Name) {
		return fmt.Errorf("name %q is not a valid identifier", o.Name)
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return nil
}

// Generate writes a Go matcher for the pattern. The matcher accepts the
// same inputs as Match: anchored at the start, succeeding on the first
// accepted prefix.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	c := compiler.New(compiler.Config{
		Pattern:          opts.Pattern,
		Name:             opts.Name,
		Package:          opts.Package,
		GenerateTestFile: opts.GenerateTestFile || len(opts.TestFileInputs) > 0,
		TestFileInputs:   opts.TestFileInputs,
		Verbose:          opts.Verbose,
	})
	c.SetOutputFile(opts.OutputFile)

	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}
