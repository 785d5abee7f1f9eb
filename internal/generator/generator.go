package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/seitarof/gen-from/internal/parser"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"indent": indent,
}).ParseFS(templateFS, "templates/*.go.tmpl"))

// Generator writes one output file from synthesized routines.
type Generator interface {
	Generate(cfg Config, unit Unit) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

// Unit is the content of one generated file.
type Unit struct {
	Package string
	// Imports are the imports of the files declaring the target types.
	// Unused ones are dropped by the formatter.
	Imports  []parser.Import
	Routines []string
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
}

type goimportsFormatter struct{}

type fileWriter struct{}

type templateData struct {
	Package  string
	Imports  []parser.Import
	Routines []string
}

// New creates a code generator.
func New(f Formatter, w FileWriter) Generator {
	return &generatorImpl{formatter: f, writer: w}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Generate(cfg Config, unit Unit) error {
	if len(unit.Routines) == 0 {
		return fmt.Errorf("no conversion routines")
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "convert.go.tmpl", buildTemplateData(unit)); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	formatted, err := g.formatter.Format(cfg.OutputFilename(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), formatted); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

func buildTemplateData(unit Unit) templateData {
	seen := map[parser.Import]struct{}{}
	importsList := make([]parser.Import, 0, len(unit.Imports))
	for _, imp := range unit.Imports {
		if _, ok := seen[imp]; ok {
			continue
		}
		seen[imp] = struct{}{}
		importsList = append(importsList, imp)
	}
	sort.Slice(importsList, func(i, j int) bool {
		if importsList[i].Path == importsList[j].Path {
			return importsList[i].Name < importsList[j].Name
		}
		return importsList[i].Path < importsList[j].Path
	})

	routines := make([]string, 0, len(unit.Routines))
	for _, r := range unit.Routines {
		routines = append(routines, strings.TrimRight(r, "\n")+"\n")
	}

	return templateData{
		Package:  unit.Package,
		Imports:  importsList,
		Routines: routines,
	}
}
