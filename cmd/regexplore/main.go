// Command regexplore compiles a regular expression and explains it: the
// highlighted pattern, warnings with their fixes, token details, stepwise
// runs over sample inputs, exports of the automaton and generated Go
// matchers.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ogier/pflag"
	"github.com/pkg/profile"

	"github.com/ycandau/regexplore-v2/internal/config"
	"github.com/ycandau/regexplore-v2/internal/render"
	"github.com/ycandau/regexplore-v2/pkg/regexplore"
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

func (a *arrayFlags) Type() string {
	return "stringArray"
}

type options struct {
	inputs       arrayFlags
	format       string
	configPath   string
	sampleConfig bool
	style        string
	formatter    string
	noColor      bool
	info         int
	generate     bool
	output       string
	name         string
	pkg          string
	testFile     bool
	profile      string
	verbose      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options

	fs := pflag.NewFlagSet("regexplore", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.VarP(&opts.inputs, "input", "i", "Input to run the pattern on (repeatable)")
	fs.StringVarP(&opts.format, "format", "f", "", "Output format: "+strings.Join(render.Formats, ", "))
	fs.StringVarP(&opts.configPath, "config", "c", "", "Path of a TOML settings file")
	fs.BoolVar(&opts.sampleConfig, "sample-config", false, "Print a sample settings file and exit")
	fs.StringVar(&opts.style, "style", "", "Chroma style used for highlighting")
	fs.StringVar(&opts.formatter, "formatter", "", "Chroma formatter used for highlighting")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored reports")
	fs.IntVar(&opts.info, "info", -1, "Describe the lexeme at this index")
	fs.BoolVarP(&opts.generate, "generate", "g", false, "Write a Go matcher instead of explaining the pattern")
	fs.StringVarP(&opts.output, "output", "o", "", "Path of the generated matcher")
	fs.StringVar(&opts.name, "name", "", "Type name of the generated matcher")
	fs.StringVar(&opts.pkg, "package", "", "Package of the generated matcher")
	fs.BoolVar(&opts.testFile, "test-file", false, "Also generate a test file for the matcher")
	fs.StringVar(&opts.profile, "profile", "", "Profile the run: cpu or mem")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every compilation stage")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: regexplore [flags] <pattern>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.sampleConfig {
		_, err := io.WriteString(stdout, config.SampleSettings())
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one pattern, got %d arguments", fs.NArg())
	}
	pattern := fs.Arg(0)

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	if opts.profile != "" {
		stop, err := startProfile(opts.profile)
		if err != nil {
			return err
		}
		defer stop()
	}

	if opts.generate {
		return generate(pattern, opts, settings, stderr)
	}

	var re *regexplore.Regex
	if opts.verbose {
		re = regexplore.CompileVerbose(pattern, stderr)
	} else {
		re = regexplore.Compile(pattern)
	}

	if settings.Output.Format == render.FormatText {
		return writeText(stdout, re, opts, settings)
	}
	return render.Export(stdout, settings.Output.Format, summarize(re, opts.inputs))
}

// loadSettings reads the settings file, if any, and applies the flags that
// override it.
func loadSettings(opts options) (config.Settings, error) {
	settings := config.Default()
	if opts.configPath != "" {
		var err error
		if settings, err = config.Load(opts.configPath); err != nil {
			return settings, err
		}
	}

	if opts.format != "" {
		settings.Output.Format = opts.format
	}
	if opts.style != "" {
		settings.Highlight.Style = opts.style
	}
	if opts.formatter != "" {
		settings.Highlight.Formatter = opts.formatter
	}
	if opts.noColor {
		settings.Highlight.Color = false
	}
	if opts.name != "" {
		settings.Generate.Name = opts.name
	}
	if opts.output != "" {
		settings.Generate.Output = opts.output
	}
	if opts.pkg != "" {
		settings.Generate.Package = opts.pkg
	}
	if opts.testFile {
		settings.Generate.TestFile = true
	}

	for _, f := range render.Formats {
		if f == settings.Output.Format {
			return settings, nil
		}
	}
	return settings, fmt.Errorf("unsupported format %q", settings.Output.Format)
}

func startProfile(mode string) (func(), error) {
	var p interface{ Stop() }
	switch mode {
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		p = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
	return p.Stop, nil
}

func generate(pattern string, opts options, settings config.Settings, stderr io.Writer) error {
	err := regexplore.Generate(regexplore.Options{
		Pattern:          pattern,
		Name:             settings.Generate.Name,
		OutputFile:       settings.Generate.Output,
		Package:          settings.Generate.Package,
		GenerateTestFile: settings.Generate.TestFile,
		TestFileInputs:   opts.inputs,
		Verbose:          opts.verbose,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Generated %s\n", settings.Generate.Output)
	return nil
}

func writeText(w io.Writer, re *regexplore.Regex, opts options, settings config.Settings) error {
	if err := render.Highlight(w, re.Lexemes(), settings.Highlight.Style, settings.Highlight.Formatter); err != nil {
		return err
	}
	fmt.Fprintln(w)

	reporter := render.NewReporter(w, settings.Highlight.Color)
	reporter.Warnings(re.Warnings())
	if fixed := re.Autofix(); fixed != re.Pattern() {
		fmt.Fprintf(w, "Autofix: %s\n", fixed)
	}

	if opts.info >= 0 {
		if opts.info >= len(re.Lexemes()) {
			return fmt.Errorf("no lexeme at index %d", opts.info)
		}
		fmt.Fprintln(w)
		reporter.TokenInfo(re.TokenInfo(opts.info))
	}

	for _, input := range opts.inputs {
		trace, matched := re.Match(input)

		fmt.Fprintf(w, "\nInput %q: matched=%v\n", input, matched)
		reporter.Trace(re.NFA(), []rune(input), trace)
	}
	return nil
}

func summarize(re *regexplore.Regex, inputs []string) *render.Summary {
	s := &render.Summary{
		Pattern:  re.Pattern(),
		Autofix:  re.Autofix(),
		RPN:      labels(re),
		Warnings: re.Warnings(),
		Graph:    re.Graph(),
		NFA:      re.NFA(),
	}
	for _, input := range inputs {
		s.Runs = append(s.Runs, render.NewRun(re.NFA(), input))
	}
	return s
}

func labels(re *regexplore.Regex) string {
	var sb strings.Builder
	for _, t := range re.RPN() {
		sb.WriteString(t.Label)
	}
	return sb.String()
}
