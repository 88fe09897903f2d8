package linechart

import (
	"errors"
	"fmt"
)

var (
	// ErrAccessor is returned when a record or series owner cannot produce
	// the label or value it was asked for.
	ErrAccessor = errors.New("accessor failed")

	// ErrMisalignedSeries is returned when a series cannot be placed under
	// the shared row labels without landing values under the wrong row.
	ErrMisalignedSeries = errors.New("misaligned series")

	// ErrInvalidOption is returned when an option bundle carries a value of
	// the wrong type for a recognized option.
	ErrInvalidOption = errors.New("invalid chart option")
)

// Series is one plotted line. Owner is the object the series was derived
// from, and is where a dynamic column title is read from.
type Series[R any] struct {
	Owner   any
	Records []R
}

// Len returns the number of records in the series.
func (s Series[R]) Len() int {
	return len(s.Records)
}

// LabelFunc returns the row label of a record, e.g. a date.
type LabelFunc[R any, L comparable] func(R) (L, error)

// ValueFunc returns the plotted value of a record.
type ValueFunc[R any] func(R) (float64, error)

// SeriesLabelFunc reports the column title carried by a series owner. The
// boolean is false when the owner does not expose one.
type SeriesLabelFunc func(owner any) (string, bool)

func accessorError(what string, series, record int, err error) error {
	return fmt.Errorf("%w: %s of series %d record %d: %w", ErrAccessor, what, series, record, err)
}
