package testpkgs

//from(source = Src)
type InDst struct {
	A int32
}
