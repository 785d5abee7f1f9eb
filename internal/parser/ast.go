package parser

import (
	"go/ast"
	"go/types"
)

// analyzeExpr derives a TypeDetail from syntax alone. It is used when type
// information is unavailable, so named types keep TypeKindOther.
func analyzeExpr(expr ast.Expr) TypeDetail {
	name := types.ExprString(expr)
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return analyzeExpr(e.X)
	case *ast.Ident:
		switch e.Name {
		case "any", "error":
			return TypeDetail{Kind: TypeKindInterface, TypeName: name}
		}
		if obj := types.Universe.Lookup(e.Name); obj != nil {
			if basic, ok := obj.Type().(*types.Basic); ok {
				return TypeDetail{Kind: TypeKindBasic, IsBasic: true, BasicKind: basic.Name(), TypeName: name}
			}
		}
		return TypeDetail{Kind: TypeKindOther, TypeName: name}
	case *ast.StarExpr:
		elem := analyzeExpr(e.X)
		return TypeDetail{Kind: TypeKindPointer, ElemType: &elem, TypeName: name}
	case *ast.ArrayType:
		elem := analyzeExpr(e.Elt)
		if e.Len == nil {
			return TypeDetail{Kind: TypeKindSlice, ElemType: &elem, TypeName: name}
		}
		return TypeDetail{Kind: TypeKindArray, ElemType: &elem, TypeName: name}
	case *ast.MapType:
		key := analyzeExpr(e.Key)
		elem := analyzeExpr(e.Value)
		return TypeDetail{Kind: TypeKindMap, KeyType: &key, ElemType: &elem, TypeName: name}
	case *ast.ChanType:
		return TypeDetail{Kind: TypeKindChan, TypeName: name}
	case *ast.FuncType:
		return TypeDetail{Kind: TypeKindFunc, TypeName: name}
	case *ast.InterfaceType:
		return TypeDetail{Kind: TypeKindInterface, TypeName: name}
	case *ast.StructType:
		return TypeDetail{Kind: TypeKindStruct, TypeName: name}
	default:
		return TypeDetail{Kind: TypeKindOther, TypeName: name}
	}
}
