package generator

import (
	"fmt"
	"testing"

	"github.com/seitarof/gen-from/internal/directive"
	"github.com/seitarof/gen-from/internal/resolver"
)

type passthroughFormatter struct{}

type discardWriter struct{}

func (passthroughFormatter) Format(_ string, src []byte) ([]byte, error) { return src, nil }

func (discardWriter) Write(_ string, _ []byte) error { return nil }

func BenchmarkGeneratorGenerate_TemplateOnly(b *testing.B) {
	g := New(passthroughFormatter{}, discardWriter{})
	cfg := testConfig{filename: "bench_gen.go"}
	unit := Unit{Package: "dto", Routines: make([]string, 0, 8)}
	for i := 0; i < 8; i++ {
		unit.Routines = append(unit.Routines, fmt.Sprintf("func ConvertSrcType%dToDstType%d() {}\n", i, i))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.Generate(cfg, unit); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSynthesize(b *testing.B) {
	desc := benchmarkDescriptor(32)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Synthesize(desc); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkDescriptor(fieldCount int) *resolver.TypeDescriptor {
	strategies := []resolver.ConversionStrategy{
		resolver.StrategyIdentity,
		resolver.StrategyCoerce,
		resolver.StrategyCoerceEach,
		resolver.StrategySkip,
	}
	desc := &resolver.TypeDescriptor{
		Source:   directive.NewPath("src", "SrcType"),
		Target:   "DstType",
		FuncName: "ConvertSrcTypeToDstType",
		Fields:   make([]resolver.FieldDescriptor, 0, fieldCount),
	}
	for j := 0; j < fieldCount; j++ {
		desc.Fields = append(desc.Fields, resolver.FieldDescriptor{
			TargetName:  fmt.Sprintf("DstField%d", j),
			SourceAlias: fmt.Sprintf("SrcField%d", j),
			Strategy:    strategies[j%len(strategies)],
			Type:        sliceOf(basic("int64")),
		})
	}
	return desc
}
