package model

type User struct {
	ID       int
	FullName string
	Tags     []int32
	Attrs    map[string]int
	Age      int
	Secret   string
	Labels   []int64
}
