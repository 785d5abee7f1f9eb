package dto

import (
	"strconv"

	m "github.com/seitarof/gen-from/testdata/model"
)

// UserDTO is the API form of a user.
//
// from(source = m.User)
type UserDTO struct {
	//from(into)
	ID int64
	//from(source = FullName)
	Name string
	//from(iter_into)
	Tags []int64
	//from(map_into)
	Attrs  map[string]int64
	Age    string //from(map = strconv.Itoa)
	Secret string //from(skip)
	Labels IDs    //from(iter_into)
}

type IDs []int64

// Plain has no directives.
type Plain struct {
	A int
}
