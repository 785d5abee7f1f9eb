package resolver

import (
	"path"
	"strings"
	"unicode"

	"github.com/seitarof/gen-from/internal/directive"
	"github.com/seitarof/gen-from/internal/parser"
)

// TypeDescriptor is the validated conversion plan for one target type.
type TypeDescriptor struct {
	Source   directive.Path
	Target   string
	PkgName  string
	PkgPath  string
	FuncName string
	Fields   []FieldDescriptor
}

// FieldDescriptor describes how one target field is populated.
type FieldDescriptor struct {
	TargetName  string
	SourceAlias string
	Strategy    ConversionStrategy
	// Transform is the verbatim expression of StrategyCustom.
	Transform string
	Type      parser.TypeDetail
}

// ConversionStrategy identifies conversion behavior.
type ConversionStrategy int

const (
	StrategyIdentity ConversionStrategy = iota
	StrategyCoerce
	StrategyCoerceEach
	// StrategyCoerceMapped converts every entry of a map field. Keys are
	// converted as well as values: dst.M[(K)(k)] = (V)(v).
	StrategyCoerceMapped
	StrategyCustom
	StrategySkip
)

// String returns a human-readable strategy name.
func (s ConversionStrategy) String() string {
	switch s {
	case StrategyIdentity:
		return "identity"
	case StrategyCoerce:
		return "coerce"
	case StrategyCoerceEach:
		return "coerce-each"
	case StrategyCoerceMapped:
		return "coerce-mapped"
	case StrategyCustom:
		return "custom"
	case StrategySkip:
		return "skip"
	default:
		return "unknown"
	}
}

func strategyOf(kind directive.Kind) ConversionStrategy {
	switch kind {
	case directive.KindInto:
		return StrategyCoerce
	case directive.KindIterInto:
		return StrategyCoerceEach
	case directive.KindMapInto:
		return StrategyCoerceMapped
	case directive.KindMap:
		return StrategyCustom
	case directive.KindSkip:
		return StrategySkip
	default:
		return StrategyIdentity
	}
}

// DefaultConverterName returns generated converter function name.
func DefaultConverterName(srcPkgPath, srcName, dstPkgPath, dstName string) string {
	if srcName != dstName {
		return "Convert" + srcName + "To" + dstName
	}
	return "Convert" + packageToken(srcPkgPath) + srcName + "To" + packageToken(dstPkgPath) + dstName
}

func packageToken(pkgPath string) string {
	base := path.Base(strings.TrimSpace(pkgPath))
	if base == "" || base == "." || base == "/" {
		return "Pkg"
	}
	return toExportedToken(base)
}

func toExportedToken(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return "Pkg"
	}

	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		first := runes[0]
		b.WriteRune(unicode.ToUpper(first))
		if len(runes) > 1 {
			b.WriteString(string(runes[1:]))
		}
	}
	if b.Len() == 0 {
		return "Pkg"
	}
	return b.String()
}
