package directive

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Alternatives(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Directive
	}{
		{name: "qualified source", payload: "(source = model.User)", want: Directive{Kind: KindSource, Path: NewPath("model", "User")}},
		{name: "bare source", payload: "(source=FullName)", want: Directive{Kind: KindSource, Path: NewPath("", "FullName")}},
		{name: "into", payload: "(into)", want: Directive{Kind: KindInto}},
		{name: "iter_into", payload: "( iter_into )", want: Directive{Kind: KindIterInto}},
		{name: "map_into", payload: "(map_into)", want: Directive{Kind: KindMapInto}},
		{name: "map", payload: "(map = strconv.Itoa)", want: Directive{Kind: KindMap, Expr: "strconv.Itoa"}},
		{name: "skip", payload: " (skip)", want: Directive{Kind: KindSkip}},
		{name: "flag ignores trailing content", payload: "(into, skip)", want: Directive{Kind: KindInto}},
		{name: "trailing note", payload: "(into) // legacy id", want: Directive{Kind: KindInto}},
		{name: "source with trailing note", payload: "(source = Key)  // renamed in v2", want: Directive{Kind: KindSource, Path: NewPath("", "Key")}},
		{
			name:    "map with parens in literals",
			payload: `(map = func(s string) string { return s + ")" + string(')') })`,
			want:    Directive{Kind: KindMap, Expr: `func(s string) string { return s + ")" + string(')') }`},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_MapKeepsExpressionVerbatim(t *testing.T) {
	expr := `func(v int) string { return fmt.Sprint(v)  }`
	got, err := Parse("(map = " + expr + ")")
	require.NoError(t, err)
	assert.Equal(t, KindMap, got.Kind)
	assert.Equal(t, expr, got.Expr)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty", payload: ""},
		{name: "not parenthesized", payload: " into"},
		{name: "unknown keyword", payload: "(onto)"},
		{name: "keyword prefix only", payload: "(intox)"},
		{name: "source without value", payload: "(source)"},
		{name: "source with empty value", payload: "(source = )"},
		{name: "source compares", payload: "(source == User)"},
		{name: "source not a path", payload: "(source = a.b.c)"},
		{name: "source call", payload: "(source = New())"},
		{name: "map without value", payload: "(map)"},
		{name: "map bad expression", payload: "(map = func(){)"},
		{name: "unbalanced", payload: "(into"},
		{name: "text after entry", payload: "(into) legacy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.payload)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "error %v should wrap ErrInvalid", err)
		})
	}
}

func TestPath(t *testing.T) {
	p := NewPath("model", "User")
	assert.False(t, p.IsIdent())
	assert.Equal(t, "model", p.Qualifier())
	assert.Equal(t, "User", p.Name())
	assert.Equal(t, "model.User", p.String())

	bare := NewPath("", "Name")
	assert.True(t, bare.IsIdent())
	assert.Equal(t, "Name", bare.String())
}

func TestKind_StringAndConversion(t *testing.T) {
	assert.Equal(t, "iter_into", KindIterInto.String())
	assert.Equal(t, "unknown", Kind(99).String())
	assert.False(t, Directive{Kind: KindSource}.IsConversion())
	assert.True(t, Directive{Kind: KindSkip}.IsConversion())
}

const collectSrc = `package p

// User is a DTO.
//
//go:generate gen-from
//from(source = model.User)
//fromage is not a directive
// from the model package
type User struct {
	//from(into)
	//from(skip)
	ID int //from(source = Key)
	Name string
	Bad int //from into
}
`

func TestCollect_FiltersMarkerAndKeepsOrder(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "user.go", collectSrc, parser.ParseComments)
	require.NoError(t, err)

	decl := file.Decls[0].(*ast.GenDecl)
	typeAnnos := Collect(fset, decl.Doc)
	require.Len(t, typeAnnos, 1)
	assert.Equal(t, "(source = model.User)", typeAnnos[0].Payload)
	assert.Equal(t, 6, typeAnnos[0].Pos.Line)
	assert.Equal(t, 1, typeAnnos[0].Pos.Column)
	assert.Equal(t, 7, typeAnnos[0].PayloadPos.Column)

	st := decl.Specs[0].(*ast.TypeSpec).Type.(*ast.StructType)
	id := st.Fields.List[0]
	idAnnos := Collect(fset, id.Doc, id.Comment)
	require.Len(t, idAnnos, 3)
	assert.Equal(t, "(into)", idAnnos[0].Payload)
	assert.Equal(t, "(skip)", idAnnos[1].Payload)
	assert.Equal(t, "(source = Key)", idAnnos[2].Payload)

	name := st.Fields.List[1]
	assert.Empty(t, Collect(fset, name.Doc, name.Comment))

	bad := st.Fields.List[2]
	badAnnos := Collect(fset, bad.Doc, bad.Comment)
	require.Len(t, badAnnos, 1)
	assert.Equal(t, " into", badAnnos[0].Payload)
}

func TestCollect_AcceptsGofmtSpacing(t *testing.T) {
	src := "package p\n\n// from(source = model.Account)\ntype Account struct{}\n"
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "account.go", src, parser.ParseComments)
	require.NoError(t, err)

	annos := Collect(fset, file.Decls[0].(*ast.GenDecl).Doc)
	require.Len(t, annos, 1)
	assert.Equal(t, "(source = model.Account)", annos[0].Payload)
	assert.Equal(t, 8, annos[0].PayloadPos.Column)
}

func TestParseAll_OneResultPerOccurrence(t *testing.T) {
	results := ParseAll([]Annotation{
		{Payload: "(into)"},
		{Payload: "(nope)"},
		{Payload: "(skip)"},
	})
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, KindInto, results[0].Directive.Kind)
	assert.ErrorIs(t, results[1].Err, ErrInvalid)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, KindSkip, results[2].Directive.Kind)
}
