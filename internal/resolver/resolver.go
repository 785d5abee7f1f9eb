package resolver

import (
	"github.com/seitarof/gen-from/internal/diag"
	"github.com/seitarof/gen-from/internal/directive"
	"github.com/seitarof/gen-from/internal/parser"
)

// Resolver turns an annotated type into a validated TypeDescriptor.
type Resolver interface {
	// Resolve reports recoverable problems to sink and keeps going. A fatal
	// problem is reported too and returned as a *diag.Diagnostic error, in
	// which case the descriptor is nil.
	Resolve(info *parser.StructInfo, sink diag.Sink) (*TypeDescriptor, error)
}

type resolverImpl struct{}

// New returns default resolver.
func New() Resolver {
	return &resolverImpl{}
}

func (r *resolverImpl) Resolve(info *parser.StructInfo, sink diag.Sink) (*TypeDescriptor, error) {
	source, err := resolveSource(info, sink)
	if err != nil {
		return nil, err
	}

	switch {
	case info.Shape != parser.ShapeStruct:
		return nil, diag.Fatalf(sink, info.Pos, "//from can only be used on struct types with named fields")
	case info.Generic:
		return nil, diag.Fatalf(sink, info.Pos, "//from cannot be used on generic struct types")
	}

	fields := make([]FieldDescriptor, 0, len(info.Fields))
	for _, f := range info.Fields {
		b := fieldBuilder{field: f}
		for _, res := range directive.ParseAll(f.Annotations) {
			b.update(res, sink)
		}
		fields = append(fields, b.build()...)
	}

	srcPkg := source.Qualifier()
	if srcPkg == "" {
		srcPkg = info.PkgPath
	}
	return &TypeDescriptor{
		Source:   source,
		Target:   info.Name,
		PkgName:  info.PkgName,
		PkgPath:  info.PkgPath,
		FuncName: DefaultConverterName(srcPkg, source.Name(), info.PkgPath, info.Name),
		Fields:   fields,
	}, nil
}

func resolveSource(info *parser.StructInfo, sink diag.Sink) (directive.Path, error) {
	var (
		source directive.Path
		found  bool
	)
	for _, res := range directive.ParseAll(info.Annotations) {
		if res.Err != nil {
			diag.Errorf(sink, res.PayloadPos, "%v", res.Err)
			continue
		}
		if res.Directive.Kind != directive.KindSource {
			diag.Errorf(sink, res.Pos, "only //from(source = ...) is allowed at the type level")
			continue
		}
		if found {
			return directive.Path{}, diag.Fatalf(sink, res.Pos, "only one //from(source = ...) can be specified at the type level")
		}
		source, found = res.Directive.Path, true
	}
	if !found {
		return directive.Path{}, diag.Fatalf(sink, info.Pos, "//from(source = ...) must be specified at the type level")
	}
	return source, nil
}

// fieldBuilder folds the directives of one field line. The first conversion
// method and the first alias win; later ones are rejected.
type fieldBuilder struct {
	field       parser.FieldInfo
	alias       string
	hasAlias    bool
	strategy    ConversionStrategy
	transform   string
	hasStrategy bool
}

func (b *fieldBuilder) update(res directive.Result, sink diag.Sink) {
	if res.Err != nil {
		diag.Errorf(sink, res.PayloadPos, "%v", res.Err)
		return
	}

	d := res.Directive
	if d.Kind == directive.KindSource {
		switch {
		case !d.Path.IsIdent():
			diag.Errorf(sink, res.Pos, "only bare identifiers can be used for //from(source = ...) on fields")
		case b.hasAlias:
			diag.Errorf(sink, res.Pos, "only one //from(source = ...) can be used per field")
		case len(b.field.Names) > 1:
			diag.Errorf(sink, res.Pos, "//from(source = ...) cannot be used on a field declaring several names")
		default:
			b.alias, b.hasAlias = d.Path.Name(), true
		}
		return
	}

	if b.hasStrategy {
		diag.Errorf(sink, res.Pos, "only one conversion method can be used per field")
		return
	}
	switch kind := b.field.TypeInfo.Kind; {
	case d.Kind == directive.KindIterInto && kind != parser.TypeKindSlice:
		diag.Errorf(sink, res.Pos, "iter_into requires a slice field, got %s", b.field.TypeStr)
		return
	case d.Kind == directive.KindMapInto && kind != parser.TypeKindMap:
		diag.Errorf(sink, res.Pos, "map_into requires a map field, got %s", b.field.TypeStr)
		return
	}
	b.strategy, b.transform, b.hasStrategy = strategyOf(d.Kind), d.Expr, true
}

func (b *fieldBuilder) build() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(b.field.Names))
	for _, name := range b.field.Names {
		alias := name
		if b.hasAlias {
			alias = b.alias
		}
		out = append(out, FieldDescriptor{
			TargetName:  name,
			SourceAlias: alias,
			Strategy:    b.strategy,
			Transform:   b.transform,
			Type:        b.field.TypeInfo,
		})
	}
	return out
}
