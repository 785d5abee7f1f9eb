package cli

import (
	"path/filepath"
	"strings"
)

// DefaultOutput is the default name of the generated file.
const DefaultOutput = "from_gen.go"

// Config stores CLI options for a single generation run.
type Config struct {
	Dir         string
	Patterns    []string
	Output      string
	BuildTags   []string
	Tests       bool
	LogLevel    string
	ConfigFile  string
	ShowVersion bool
}

// fileConfig is the YAML form of Config accepted by --config.
type fileConfig struct {
	Output   *string  `yaml:"output"`
	Tags     []string `yaml:"tags"`
	Tests    *bool    `yaml:"tests"`
	LogLevel *string  `yaml:"log_level"`
}

// OutputName returns the generated file name for regular code, in-package
// test code, or an external test package sharing the directory.
func (c *Config) OutputName(test, external bool) string {
	base := strings.TrimSuffix(c.Output, ".go")
	switch {
	case external:
		return base + "_external_test.go"
	case test:
		return base + "_test.go"
	default:
		return c.Output
	}
}

// outputBaseNames lists every file name a run may write.
func (c *Config) outputBaseNames() []string {
	return []string{
		filepath.Base(c.OutputName(false, false)),
		filepath.Base(c.OutputName(true, false)),
		filepath.Base(c.OutputName(true, true)),
	}
}

// outputTarget adapts a concrete file path to generator.Config.
type outputTarget string

func (t outputTarget) OutputFilename() string { return string(t) }
