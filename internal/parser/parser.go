package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/seitarof/gen-from/internal/directive"
)

// Parser discovers //from annotated types in Go packages.
type Parser interface {
	Parse(opts LoadOptions, patterns ...string) ([]*PackageInfo, error)
}

// LoadOptions controls how packages are loaded.
type LoadOptions struct {
	Dir       string
	BuildTags []string
	Tests     bool
	// SkipFiles are base names of files whose declarations are ignored,
	// typically previously generated output.
	SkipFiles []string
}

type parserImpl struct{}

// New returns default parser.
func New() Parser {
	return &parserImpl{}
}

func (p *parserImpl) Parse(opts LoadOptions, patterns ...string) ([]*PackageInfo, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pkgs, err := p.loadPackages(opts, patterns)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	groups := map[string]*PackageInfo{}
	var result []*PackageInfo
	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.PkgPath, ".test") {
			continue
		}
		for _, file := range pkg.Syntax {
			filename := pkg.Fset.Position(file.Package).Filename
			test := strings.HasSuffix(filename, "_test.go")
			for _, info := range p.parseFile(pkg, file) {
				key := info.Pos.Filename + ":" + strconv.Itoa(info.Pos.Offset)
				if seen[key] {
					continue
				}
				seen[key] = true

				dir := filepath.Dir(filename)
				groupKey := dir + "|" + pkg.Name + "|" + strconv.FormatBool(test)
				group, ok := groups[groupKey]
				if !ok {
					group = &PackageInfo{
						Name:     pkg.Name,
						PkgPath:  pkg.PkgPath,
						Dir:      dir,
						Test:     test,
						External: test && strings.HasSuffix(pkg.Name, "_test"),
					}
					groups[groupKey] = group
					result = append(result, group)
				}
				group.Structs = append(group.Structs, info)
			}
		}
	}
	return result, nil
}

func (p *parserImpl) loadPackages(opts LoadOptions, patterns []string) ([]*packages.Package, error) {
	skip := make(map[string]bool, len(opts.SkipFiles))
	for _, name := range opts.SkipFiles {
		skip[name] = true
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
		Dir:   opts.Dir,
		Tests: opts.Tests,
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			mode := parser.ParseComments | parser.SkipObjectResolution
			if skip[filepath.Base(filename)] {
				mode = parser.PackageClauseOnly
			}
			return parser.ParseFile(fset, filename, src, mode)
		},
	}
	if len(opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(opts.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages %q: %w", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("packages %q not found", patterns)
	}

	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.PkgPath, ".test") {
			continue
		}
		for _, e := range pkg.Errors {
			if !tolerable(pkg, e) {
				return nil, fmt.Errorf("package %q: %s", pkg.ID, e)
			}
		}
	}
	return pkgs, nil
}

// tolerable reports whether a load error still leaves usable syntax. Compile
// failures are expected: imports used only by the code about to be generated
// are unused, and skipped output may still be referenced. go list reports
// them as a ListError next to the individual TypeErrors.
func tolerable(pkg *packages.Package, e packages.Error) bool {
	switch e.Kind {
	case packages.TypeError:
		return true
	case packages.ListError:
		return len(pkg.Syntax) > 0
	default:
		return false
	}
}

func (p *parserImpl) parseFile(pkg *packages.Package, file *ast.File) []*StructInfo {
	imports := fileImports(file)
	qualifier := importQualifier(pkg.PkgPath, imports)

	var infos []*StructInfo
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			docs := []*ast.CommentGroup{ts.Doc, ts.Comment}
			if !gd.Lparen.IsValid() {
				docs = append([]*ast.CommentGroup{gd.Doc}, docs...)
			}

			info := &StructInfo{
				Name:        ts.Name.Name,
				PkgName:     pkg.Name,
				PkgPath:     pkg.PkgPath,
				Pos:         pkg.Fset.Position(ts.Name.Pos()),
				Shape:       shapeOf(ts),
				Generic:     ts.TypeParams != nil && len(ts.TypeParams.List) > 0,
				Annotations: directive.Collect(pkg.Fset, docs...),
				Imports:     imports,
			}
			if st, ok := ts.Type.(*ast.StructType); ok && info.Shape == ShapeStruct {
				info.Fields = structFields(pkg, st, qualifier)
			}
			if info.Annotated() {
				infos = append(infos, info)
			}
		}
	}
	return infos
}

func structFields(pkg *packages.Package, st *ast.StructType, qualifier types.Qualifier) []FieldInfo {
	fields := make([]FieldInfo, 0, len(st.Fields.List))
	for _, f := range st.Fields.List {
		field := FieldInfo{
			Pos:         pkg.Fset.Position(f.Type.Pos()),
			Annotations: directive.Collect(pkg.Fset, f.Doc, f.Comment),
		}
		if len(f.Names) == 0 {
			field.Embedded = true
			field.Names = []string{embeddedName(f.Type)}
		} else {
			field.Pos = pkg.Fset.Position(f.Names[0].Pos())
			for _, n := range f.Names {
				field.Names = append(field.Names, n.Name)
			}
		}

		field.TypeInfo = analyzeExpr(f.Type)
		if pkg.TypesInfo != nil {
			if t := pkg.TypesInfo.TypeOf(f.Type); t != nil && t != types.Typ[types.Invalid] {
				field.TypeInfo = analyzeType(t, qualifier)
			}
		}
		field.TypeStr = field.TypeInfo.TypeName
		fields = append(fields, field)
	}
	return fields
}

func shapeOf(ts *ast.TypeSpec) Shape {
	if ts.Assign.IsValid() {
		return ShapeAlias
	}
	switch ts.Type.(type) {
	case *ast.StructType:
		return ShapeStruct
	case *ast.InterfaceType:
		return ShapeInterface
	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		return ShapeNamed
	default:
		return ShapeOther
	}
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return types.ExprString(expr)
	}
}

func fileImports(file *ast.File) []Import {
	imports := make([]Import, 0, len(file.Imports))
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil || path == "C" {
			continue
		}
		imp := Import{Path: path}
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}
			imp.Name = spec.Name.Name
		}
		imports = append(imports, imp)
	}
	return imports
}

// importQualifier renders package names the way the declaring file spells
// them, so that type strings stay valid next to the file's own imports.
func importQualifier(pkgPath string, imports []Import) types.Qualifier {
	named := make(map[string]string, len(imports))
	for _, imp := range imports {
		if imp.Name != "" {
			named[imp.Path] = imp.Name
		}
	}
	return func(p *types.Package) string {
		if p == nil || p.Path() == pkgPath {
			return ""
		}
		if name, ok := named[p.Path()]; ok {
			return name
		}
		return p.Name()
	}
}

func analyzeType(t types.Type, qualifier types.Qualifier) TypeDetail {
	name := types.TypeString(t, qualifier)
	switch v := t.(type) {
	case *types.Alias:
		d := analyzeType(types.Unalias(v), qualifier)
		d.TypeName = name
		return d
	case *types.Basic:
		return TypeDetail{
			Kind:      TypeKindBasic,
			IsBasic:   true,
			BasicKind: v.Name(),
			TypeName:  name,
		}
	case *types.Pointer:
		elem := analyzeType(v.Elem(), qualifier)
		return TypeDetail{Kind: TypeKindPointer, ElemType: &elem, TypeName: name}
	case *types.Slice:
		elem := analyzeType(v.Elem(), qualifier)
		return TypeDetail{Kind: TypeKindSlice, ElemType: &elem, TypeName: name}
	case *types.Array:
		elem := analyzeType(v.Elem(), qualifier)
		return TypeDetail{Kind: TypeKindArray, ElemType: &elem, TypeName: name}
	case *types.Map:
		key := analyzeType(v.Key(), qualifier)
		elem := analyzeType(v.Elem(), qualifier)
		return TypeDetail{Kind: TypeKindMap, KeyType: &key, ElemType: &elem, TypeName: name}
	case *types.Chan:
		return TypeDetail{Kind: TypeKindChan, TypeName: name}
	case *types.Signature:
		return TypeDetail{Kind: TypeKindFunc, TypeName: name}
	case *types.Interface:
		return TypeDetail{Kind: TypeKindInterface, TypeName: name}
	case *types.Struct:
		return TypeDetail{Kind: TypeKindStruct, TypeName: name}
	case *types.Named:
		obj := v.Obj()
		pkgPath := ""
		if obj.Pkg() != nil {
			pkgPath = obj.Pkg().Path()
		}
		if _, ok := v.Underlying().(*types.Struct); ok {
			return TypeDetail{Kind: TypeKindStruct, PkgPath: pkgPath, StructName: obj.Name(), TypeName: name}
		}
		d := analyzeType(v.Underlying(), qualifier)
		d.PkgPath = pkgPath
		d.TypeName = name
		return d
	default:
		return TypeDetail{Kind: TypeKindOther, TypeName: strings.TrimSpace(name)}
	}
}
