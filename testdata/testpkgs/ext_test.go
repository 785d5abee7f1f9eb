package testpkgs_test

import "github.com/seitarof/gen-from/testdata/testpkgs"

//from(source = testpkgs.Src)
type ExtDst struct {
	//from(into)
	A int64
}
