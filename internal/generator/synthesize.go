package generator

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/seitarof/gen-from/internal/parser"
	"github.com/seitarof/gen-from/internal/resolver"
)

type routineTemplateData struct {
	FuncName   string
	Source     string
	Target     string
	Statements []string
}

var fragmentOptions = &imports.Options{
	Fragment:   true,
	FormatOnly: true,
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
}

// Synthesize renders the conversion function for desc. It performs no I/O
// and returns identical output for identical descriptors.
func Synthesize(desc *resolver.TypeDescriptor) (string, error) {
	if desc == nil {
		return "", fmt.Errorf("no type descriptor")
	}

	data := routineTemplateData{
		FuncName:   desc.FuncName,
		Source:     desc.Source.String(),
		Target:     desc.Target,
		Statements: make([]string, 0, len(desc.Fields)),
	}
	for _, f := range desc.Fields {
		stmt, err := renderField(f)
		if err != nil {
			return "", fmt.Errorf("%s.%s: %w", desc.Target, f.TargetName, err)
		}
		data.Statements = append(data.Statements, stmt)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "routine.go.tmpl", data); err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	formatted, err := imports.Process("", buf.Bytes(), fragmentOptions)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", desc.FuncName, err)
	}
	return string(formatted), nil
}

func renderField(f resolver.FieldDescriptor) (string, error) {
	dst := "dst." + f.TargetName
	src := "src." + f.SourceAlias

	switch f.Strategy {
	case resolver.StrategyIdentity:
		return assign(dst, src), nil
	case resolver.StrategyCoerce:
		return castAssign(dst, f.Type.TypeName, src), nil
	case resolver.StrategyCoerceEach:
		if f.Type.ElemType == nil {
			return "", fmt.Errorf("element type of %s is unknown", f.Type.TypeName)
		}
		return "if " + src + " != nil {\n" +
			dst + " = make(" + f.Type.TypeName + ", len(" + src + "))\n" +
			"for i := range " + src + " {\n" +
			castAssign(dst+"[i]", f.Type.ElemType.TypeName, src+"[i]") + "\n}\n}", nil
	case resolver.StrategyCoerceMapped:
		if f.Type.KeyType == nil || f.Type.ElemType == nil {
			return "", fmt.Errorf("key or element type of %s is unknown", f.Type.TypeName)
		}
		key := "(" + f.Type.KeyType.TypeName + ")(k)"
		return "if " + src + " != nil {\n" +
			dst + " = make(" + f.Type.TypeName + ", len(" + src + "))\n" +
			"for k, v := range " + src + " {\n" +
			castAssign(dst+"["+key+"]", f.Type.ElemType.TypeName, "v") + "\n}\n}", nil
	case resolver.StrategyCustom:
		return assign(dst, "("+f.Transform+")("+src+")"), nil
	case resolver.StrategySkip:
		return assign(dst, zeroValue(f.Type)), nil
	default:
		return "", fmt.Errorf("unknown strategy %v", f.Strategy)
	}
}

func zeroValue(t parser.TypeDetail) string {
	switch t.Kind {
	case parser.TypeKindBasic:
		switch t.BasicKind {
		case "string":
			return `""`
		case "bool":
			return "false"
		case "Pointer":
			return "nil"
		default:
			return "0"
		}
	case parser.TypeKindPointer, parser.TypeKindSlice, parser.TypeKindMap,
		parser.TypeKindInterface, parser.TypeKindChan, parser.TypeKindFunc:
		return "nil"
	case parser.TypeKindStruct, parser.TypeKindArray:
		return t.TypeName + "{}"
	default:
		return "*new(" + t.TypeName + ")"
	}
}

func assign(dst, src string) string {
	return dst + " = " + src
}

func castAssign(dst, dstType, src string) string {
	return dst + " = (" + dstType + ")(" + src + ")"
}

// indent prefixes every non-blank line of a statement with one tab.
func indent(stmt string) string {
	snippet := strings.TrimSpace(stmt)
	if snippet == "" {
		return ""
	}

	var b strings.Builder
	remaining := snippet
	for {
		line, rest, found := strings.Cut(remaining, "\n")
		trimmed := strings.TrimRight(line, " ")
		if strings.TrimSpace(trimmed) != "" {
			b.WriteString("\t")
			b.WriteString(trimmed)
			b.WriteString("\n")
		}
		if !found {
			break
		}
		remaining = rest
	}
	return b.String()
}
