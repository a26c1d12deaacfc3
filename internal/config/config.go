// Package config loads regexplore settings from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

type Settings struct {
	Highlight HighlightSettings
	Output    OutputSettings
	Generate  GenerateSettings
}

type HighlightSettings struct {
	Style     string
	Formatter string
	Color     bool
}

type OutputSettings struct {
	Format string
}

type GenerateSettings struct {
	Package  string
	Name     string
	Output   string
	TestFile bool `toml:"test-file"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Highlight: HighlightSettings{
			Style:     "monokai",
			Formatter: "terminal256",
			Color:     true,
		},
		Output: OutputSettings{
			Format: "text",
		},
		Generate: GenerateSettings{
			Package: "main",
			Name:    "Pattern",
			Output:  "pattern.go",
		},
	}
}

// Load reads a settings file over the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (Settings, error) {
	settings := Default()

	f, err := os.Open(path)
	if err != nil {
		return settings, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	if err := dec.Decode(&settings); err != nil {
		return settings, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return settings, nil
}

// SampleSettings returns a commented settings file.
func SampleSettings() string {
	return `# Sample regexplore settings file
[highlight]
# Chroma style used to highlight patterns
#style="monokai"

# Chroma formatter: terminal256, terminal16m, html, noop...
#formatter="terminal256"

# Color the reports written to the terminal
#color=true

[output]
# Output format: text, json, yaml, csv or dot
#format="text"

[generate]
# Package and type name of the generated matcher
#package="main"
#name="Pattern"

# Path of the generated file, unless --output is given
#output="pattern.go"

# Also generate a test file next to the matcher
#test-file=false
`
}
