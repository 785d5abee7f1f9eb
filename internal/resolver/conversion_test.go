package resolver

import "testing"

func TestDefaultConverterName_DifferentTypeNames(t *testing.T) {
	got := DefaultConverterName("example.com/src", "User", "example.com/dst", "UserResponse")
	if got != "ConvertUserToUserResponse" {
		t.Fatalf("unexpected func name: %s", got)
	}
}

func TestDefaultConverterName_SameTypeNameUsesPackageToken(t *testing.T) {
	got := DefaultConverterName("example.com/domain-model", "User", "example.com/dto", "User")
	if got != "ConvertDomainModelUserToDtoUser" {
		t.Fatalf("unexpected func name: %s", got)
	}
}

func TestConversionStrategy_String(t *testing.T) {
	tests := map[ConversionStrategy]string{
		StrategyIdentity:       "identity",
		StrategyCoerce:         "coerce",
		StrategyCoerceEach:     "coerce-each",
		StrategyCoerceMapped:   "coerce-mapped",
		StrategyCustom:         "custom",
		StrategySkip:           "skip",
		ConversionStrategy(42): "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
