package directive

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Marker is the reserved annotation name. Directives are written as
// //from(...) line comments.
const Marker = "from"

// ErrInvalid is returned for a payload that no alternative of the grammar
// accepts.
var ErrInvalid = errors.New("invalid //from(...) directive")

// Kind identifies the variant of a Directive.
type Kind int

const (
	KindSource Kind = iota
	KindInto
	KindIterInto
	KindMapInto
	KindMap
	KindSkip
)

// String returns the keyword that selects the kind.
func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindInto:
		return "into"
	case KindIterInto:
		return "iter_into"
	case KindMapInto:
		return "map_into"
	case KindMap:
		return "map"
	case KindSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Directive is one parsed //from(...) annotation.
type Directive struct {
	Kind Kind
	// Path is set for KindSource.
	Path Path
	// Expr is the verbatim expression of KindMap.
	Expr string
}

// IsConversion reports whether d selects a per-field conversion method.
func (d Directive) IsConversion() bool {
	return d.Kind != KindSource
}

// Path names a type or field: either a bare identifier or a
// package-qualified identifier.
type Path struct {
	qualifier string
	name      string
}

// NewPath builds a path from an optional qualifier and a name.
func NewPath(qualifier, name string) Path {
	return Path{qualifier: qualifier, name: name}
}

// IsIdent reports whether p is a single bare identifier.
func (p Path) IsIdent() bool { return p.qualifier == "" }

// Qualifier returns the package part of a qualified path.
func (p Path) Qualifier() string { return p.qualifier }

// Name returns the last segment of the path.
func (p Path) Name() string { return p.name }

// String renders the path as it is emitted into generated code.
func (p Path) String() string {
	if p.qualifier == "" {
		return p.name
	}
	return p.qualifier + "." + p.name
}

type alternative struct {
	keyword string
	kind    Kind
	value   func(d *Directive, value string) error
}

// alternatives is the try list, in priority order. The first alternative
// whose keyword leads the payload decides the result.
var alternatives = []alternative{
	{keyword: "source", kind: KindSource, value: parsePathValue},
	{keyword: "into", kind: KindInto},
	{keyword: "iter_into", kind: KindIterInto},
	{keyword: "map_into", kind: KindMapInto},
	{keyword: "map", kind: KindMap, value: parseExprValue},
	{keyword: "skip", kind: KindSkip},
}

// Parse parses the payload that follows the marker, e.g. "(source = model.User)".
func Parse(payload string) (Directive, error) {
	inner, ok := parenthesized(payload)
	if !ok {
		return Directive{}, fmt.Errorf("%w: expected a parenthesized payload", ErrInvalid)
	}

	keyword, rest := leadingIdent(inner)
	for _, alt := range alternatives {
		if alt.keyword != keyword {
			continue
		}
		d := Directive{Kind: alt.kind}
		if alt.value == nil {
			return d, nil
		}
		value, err := assignedValue(keyword, rest)
		if err != nil {
			return Directive{}, err
		}
		if err := alt.value(&d, value); err != nil {
			return Directive{}, err
		}
		return d, nil
	}
	return Directive{}, ErrInvalid
}

// parenthesized returns the entry between the leading '(' and its matching
// ')'. Only blank text or a // note may follow.
func parenthesized(payload string) (string, bool) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, "(") {
		return "", false
	}
	end, ok := closingParen(payload)
	if !ok {
		return "", false
	}
	if rest := strings.TrimSpace(payload[end+1:]); rest != "" && !strings.HasPrefix(rest, "//") {
		return "", false
	}
	return payload[1:end], true
}

// closingParen returns the index of the ')' matching s[0], skipping string
// and rune literals.
func closingParen(s string) (int, bool) {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch {
			case c == '\\' && quote != '`':
				i++
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func leadingIdent(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if !isIdentRune(r) {
			break
		}
		end += size
	}
	return s[:end], s[end:]
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func assignedValue(keyword, rest string) (string, error) {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, "==") {
		return "", fmt.Errorf("%w: expected %s = ...", ErrInvalid, keyword)
	}
	value := strings.TrimSpace(rest[1:])
	if value == "" {
		return "", fmt.Errorf("%w: missing value for %s", ErrInvalid, keyword)
	}
	return value, nil
}

func parsePathValue(d *Directive, value string) error {
	expr, err := parser.ParseExpr(value)
	if err != nil {
		return fmt.Errorf("%w: %q is not a path", ErrInvalid, value)
	}
	switch e := expr.(type) {
	case *ast.Ident:
		d.Path = NewPath("", e.Name)
		return nil
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			d.Path = NewPath(x.Name, e.Sel.Name)
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a path", ErrInvalid, types.ExprString(expr))
}

func parseExprValue(d *Directive, value string) error {
	if _, err := parser.ParseExpr(value); err != nil {
		return fmt.Errorf("%w: %q is not an expression", ErrInvalid, value)
	}
	d.Expr = value
	return nil
}
