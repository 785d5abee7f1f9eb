package stale

type Src struct {
	A int
}

//from(source = Src)
type Dst struct {
	A int
}

var convert = ConvertSrcToDst
