package shapes

type Base struct {
	ID int
}

type Extra struct {
	Note string
}

type Src struct {
	Base
	*Extra
	X, Y int
	V    string
}

//from(source = Src)
type Embeds struct {
	Base
	*Extra //from(skip)
	X, Y   int
}

//from(source = Src)
type Box[T any] struct {
	V T
}

//from(source = Src)
type Alias = Base

type (
	//from(source = Src)
	Grouped struct {
		V string
	}

	Ungrouped struct {
		V string
	}
)
