package descriptor

import (
	"strconv"

	"github.com/wippyai/ffi-reflect/errors"
)

// ArrayName synthesizes the name of an array of count elements of elem,
// e.g. ArrayOf10SomeEnum. Nested arrays compose outer-in:
// ArrayOf2ArrayOf3f64 is two arrays of three f64.
func ArrayName(elem Descriptor, count uint64) string {
	return "ArrayOf" + strconv.FormatUint(count, 10) + elem.Name()
}

// PointerName synthesizes the name of a pointer to pointee.
func PointerName(pointee string, isConst bool) string {
	if isConst {
		return "ConstPtrTo" + pointee
	}
	return "MutPtrTo" + pointee
}

func errNoThunk(pointee string) error {
	return errors.New(errors.PhaseResolve, errors.KindNotFound).
		Type(pointee).
		Detail("pointer has no pointee resolver").
		Build()
}
