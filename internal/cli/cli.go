package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var tagsRaw string

	fs := pflag.NewFlagSet("gen-from", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Output, "output", "o", DefaultOutput, "output file name, written next to the annotated types")
	fs.StringVar(&tagsRaw, "tags", "", "comma-separated build tags")
	fs.BoolVar(&cfg.Tests, "tests", false, "include test files")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML config file with defaults for the flags above")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	fs.StringVarP(&cfg.Dir, "dir", "C", "", "directory to resolve package patterns from")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	cfg.BuildTags = splitCommaList(tagsRaw)
	cfg.Patterns = fs.Args()
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"."}
	}

	if cfg.ConfigFile != "" {
		if err := applyConfigFile(cfg, fs); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(cfg.Output) == "" {
		return nil, fmt.Errorf("--output is required")
	}
	if !strings.HasSuffix(cfg.Output, ".go") || strings.HasSuffix(cfg.Output, "_test.go") {
		return nil, fmt.Errorf("--output must be a non-test .go file name, got %q", cfg.Output)
	}
	return cfg, nil
}

// applyConfigFile fills options that were not set explicitly on the command
// line.
func applyConfigFile(cfg *Config, fs *pflag.FlagSet) error {
	data, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("read config %s: %w", cfg.ConfigFile, err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", cfg.ConfigFile, err)
	}

	if fc.Output != nil && !fs.Changed("output") {
		cfg.Output = *fc.Output
	}
	if len(fc.Tags) > 0 && !fs.Changed("tags") {
		cfg.BuildTags = fc.Tags
	}
	if fc.Tests != nil && !fs.Changed("tests") {
		cfg.Tests = *fc.Tests
	}
	if fc.LogLevel != nil && !fs.Changed("log-level") {
		cfg.LogLevel = *fc.LogLevel
	}
	return nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
