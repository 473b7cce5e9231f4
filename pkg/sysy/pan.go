package sysy

import (
	"import.name/pan"
)

// Entry points have the signatures compiled code expects, without error
// results. Fatal errors are raised in z and recovered by Run.
var z = new(pan.Zone)

func must[T any](x T, err error) T {
	z.Check(err)
	return x
}
