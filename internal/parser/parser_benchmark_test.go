package parser

import "testing"

func BenchmarkParse_Annotated(b *testing.B) {
	p := New()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pkgs, err := p.Parse(LoadOptions{}, testdataRoot+"dto")
		if err != nil {
			b.Fatal(err)
		}
		if len(pkgs) == 0 {
			b.Fatal("empty parse result")
		}
	}
}
