package testpkgs

type Src struct {
	A int32
}
