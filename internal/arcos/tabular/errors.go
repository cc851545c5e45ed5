package tabular

import "errors"

var (
	// ErrEmptyInput is returned when track is called on a table with no
	// rows at all.
	ErrEmptyInput = errors.New("tabular: input table is empty")
	// ErrMismatchedColumnLengths is returned when Coords and Frame disagree
	// on row count. ObjectID and BinMeas are not checked; a column of any
	// other length than Frame is treated as absent.
	ErrMismatchedColumnLengths = errors.New("tabular: Frame and Coords columns must have equal length")
	// ErrInconsistentDims is returned when Coords rows don't all share the
	// same dimensionality.
	ErrInconsistentDims = errors.New("tabular: coordinate rows have inconsistent dimensionality")
)

func validate(t *Table) error {
	n := t.Len()
	if n == 0 {
		return ErrEmptyInput
	}
	if len(t.Coords) != n {
		return ErrMismatchedColumnLengths
	}
	dims := len(t.Coords[0])
	for _, c := range t.Coords {
		if len(c) != dims {
			return ErrInconsistentDims
		}
	}
	return nil
}
