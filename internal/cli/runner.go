package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"

	"github.com/seitarof/gen-from/internal/diag"
	"github.com/seitarof/gen-from/internal/generator"
	"github.com/seitarof/gen-from/internal/parser"
	"github.com/seitarof/gen-from/internal/resolver"
)

// Runner orchestrates parser/resolver/generator layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	parser    parser.Parser
	resolver  resolver.Resolver
	generator generator.Generator
	logger    *charmlog.Logger
}

// NewRunner creates a default runner implementation.
func NewRunner(
	p parser.Parser,
	r resolver.Resolver,
	g generator.Generator,
	logger *charmlog.Logger,
) Runner {
	return &runnerImpl{
		parser:    p,
		resolver:  r,
		generator: g,
		logger:    logger,
	}
}

// Run executes one generation pass per annotated type and writes one file
// per package directory.
func (r *runnerImpl) Run(cfg *Config) error {
	pkgs, err := r.parser.Parse(parser.LoadOptions{
		Dir:       cfg.Dir,
		BuildTags: cfg.BuildTags,
		Tests:     cfg.Tests,
		SkipFiles: cfg.outputBaseNames(),
	}, cfg.Patterns...)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	var collected diag.Collector
	sink := diag.Tee(&collected, diagnosticLogger(r.logger))
	if len(pkgs) == 0 {
		sink.Report(diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Message:  fmt.Sprintf("no //from annotated types found in %v", cfg.Patterns),
		})
		return nil
	}

	written := map[string]string{}
	for _, pkg := range pkgs {
		unit, err := r.buildUnit(pkg, sink)
		if err != nil {
			return err
		}
		if len(unit.Routines) == 0 {
			continue
		}

		filename := cfg.OutputName(pkg.Test, pkg.External)
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(pkg.Dir, filename)
		}
		if prev, ok := written[filename]; ok {
			diag.Errorf(sink, pkg.Structs[0].Pos, "%s already generated for package %s, skipping package %s", filename, prev, pkg.Name)
			continue
		}
		written[filename] = pkg.Name
		if err := r.generator.Generate(outputTarget(filename), unit); err != nil {
			return fmt.Errorf("generate %s: %w", filename, err)
		}
		r.logger.Info("generated", "file", filename, "routines", len(unit.Routines))
	}

	if n := collected.Count(diag.SeverityError); n > 0 {
		return fmt.Errorf("%d problem(s) found in //from directives", n)
	}
	return nil
}

func (r *runnerImpl) buildUnit(pkg *parser.PackageInfo, sink diag.Sink) (generator.Unit, error) {
	unit := generator.Unit{Package: pkg.Name}
	for _, info := range pkg.Structs {
		desc, err := r.resolver.Resolve(info, sink)
		if err != nil {
			var d *diag.Diagnostic
			if errors.As(err, &d) {
				r.logger.Debug("skipped", "type", info.Name)
				continue
			}
			return generator.Unit{}, fmt.Errorf("resolve %s: %w", info.Name, err)
		}

		routine, err := generator.Synthesize(desc)
		if err != nil {
			return generator.Unit{}, fmt.Errorf("synthesize %s: %w", info.Name, err)
		}
		r.logger.Debug("synthesized", "type", info.Name, "func", desc.FuncName, "fields", len(desc.Fields))
		unit.Imports = append(unit.Imports, info.Imports...)
		unit.Routines = append(unit.Routines, routine)
	}
	return unit, nil
}
