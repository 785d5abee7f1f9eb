package broken

type Src struct {
	A int32
	B int
}

//from(source = Src)
//from(source = Other)
type Dup struct {
	A int32
}

// Color is an enum.
//
//from(source = Src)
type Color int

//from(source = Src)
type Ok struct {
	//from(into)
	//from(skip)
	A int64
	B int //from(bogus)
}

type Missing struct {
	//from(into)
	A int64
}
