package parser

import (
	"go/token"

	"github.com/seitarof/gen-from/internal/directive"
)

// PackageInfo groups the annotated types that share one output file.
type PackageInfo struct {
	Name    string
	PkgPath string
	Dir     string
	// Test is true for types declared in _test.go files.
	Test bool
	// External is true for an external test package (package foo_test).
	External bool
	Structs  []*StructInfo
}

// StructInfo is one annotated type declaration.
type StructInfo struct {
	Name        string
	PkgName     string
	PkgPath     string
	Pos         token.Position
	Shape       Shape
	Generic     bool
	Annotations []directive.Annotation
	Fields      []FieldInfo
	Imports     []Import
}

// Annotated reports whether the type or any of its fields carries a //from
// annotation.
func (s *StructInfo) Annotated() bool {
	if len(s.Annotations) > 0 {
		return true
	}
	for _, f := range s.Fields {
		if len(f.Annotations) > 0 {
			return true
		}
	}
	return false
}

// FieldInfo is one field line of a struct. A line may declare several
// names sharing a type and annotations.
type FieldInfo struct {
	Names       []string
	Embedded    bool
	Pos         token.Position
	TypeStr     string
	TypeInfo    TypeDetail
	Annotations []directive.Annotation
}

// Import is one import spec of the file declaring a type.
type Import struct {
	Name string
	Path string
}

// Shape is the syntactic form of a type declaration.
type Shape int

const (
	ShapeStruct Shape = iota
	ShapeNamed
	ShapeInterface
	ShapeAlias
	ShapeOther
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeStruct:
		return "struct"
	case ShapeNamed:
		return "named"
	case ShapeInterface:
		return "interface"
	case ShapeAlias:
		return "alias"
	default:
		return "other"
	}
}

// TypeDetail keeps simplified type metadata for synthesis.
type TypeDetail struct {
	Kind       TypeKind
	PkgPath    string
	ElemType   *TypeDetail
	KeyType    *TypeDetail
	IsBasic    bool
	BasicKind  string
	StructName string
	TypeName   string
}

// TypeKind is coarse-grained type category.
type TypeKind int

const (
	TypeKindBasic TypeKind = iota
	TypeKindPointer
	TypeKindStruct
	TypeKindSlice
	TypeKindMap
	TypeKindInterface
	TypeKindArray
	TypeKindChan
	TypeKindFunc
	TypeKindOther
)
