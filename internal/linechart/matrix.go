package linechart

import (
	"fmt"
	"strings"
)

// Placement decides which row a record's value is written to.
type Placement int

const (
	// LabelIndexed writes each value under the row of its record's label.
	LabelIndexed Placement = iota

	// Positional writes the j-th record of every series to row j. Series
	// must share the row label order exactly, see ValidateAlignment.
	Positional
)

func (p Placement) String() string {
	switch p {
	case Positional:
		return "positional"
	default:
		return "label"
	}
}

// ParsePlacement maps a configured placement name to a Placement. The empty
// string selects LabelIndexed.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(s) {
	case "", "label", "label_indexed":
		return LabelIndexed, nil
	case "positional":
		return Positional, nil
	default:
		return LabelIndexed, fmt.Errorf("unknown placement: %q", s)
	}
}

// Cell is a single value of the matrix.
type Cell struct {
	Row    int
	Column int
	Value  float64
}

type cellKey struct {
	row, column int
}

// Matrix is a sparse rows x columns table of values. Columns are series,
// rows are row labels.
type Matrix struct {
	Rows    int
	Columns int

	cells map[cellKey]float64
}

func NewMatrix(rows, columns int) *Matrix {
	return &Matrix{
		Rows:    rows,
		Columns: columns,
		cells:   make(map[cellKey]float64),
	}
}

// Set writes a value. Writes outside the table are an error.
func (m *Matrix) Set(row, column int, v float64) error {
	if row < 0 || row >= m.Rows || column < 0 || column >= m.Columns {
		return fmt.Errorf("cell (%d, %d) outside %dx%d matrix", row, column, m.Rows, m.Columns)
	}
	m.cells[cellKey{row, column}] = v
	return nil
}

func (m *Matrix) Get(row, column int) (float64, bool) {
	v, ok := m.cells[cellKey{row, column}]
	return v, ok
}

// Len returns the number of cells holding a value.
func (m *Matrix) Len() int {
	return len(m.cells)
}

// Cells returns the present cells column by column, top to bottom within a
// column.
func (m *Matrix) Cells() []Cell {
	cells := make([]Cell, 0, len(m.cells))
	for c := 0; c < m.Columns; c++ {
		for r := 0; r < m.Rows; r++ {
			if v, ok := m.cells[cellKey{r, c}]; ok {
				cells = append(cells, Cell{Row: r, Column: c, Value: v})
			}
		}
	}
	return cells
}

// BuildMatrix places every record value of every series into a matrix with
// one row per row label and one column per series.
//
// With LabelIndexed, a label missing from a series leaves its cell empty and
// a label repeated within one series keeps the last value. With Positional,
// the series are checked with ValidateAlignment first.
func BuildMatrix[R any, L comparable](rows []L, series []Series[R], label LabelFunc[R, L], value ValueFunc[R], placement Placement) (*Matrix, error) {
	m := NewMatrix(len(rows), len(series))

	if placement == Positional {
		if err := ValidateAlignment(rows, series, label); err != nil {
			return nil, err
		}
		for c, s := range series {
			for j, r := range s.Records {
				v, err := value(r)
				if err != nil {
					return nil, accessorError("value", c, j, err)
				}
				if err := m.Set(j, c, v); err != nil {
					return nil, err
				}
			}
		}
		return m, nil
	}

	index := make(map[L]int, len(rows))
	for i, l := range rows {
		index[l] = i
	}

	for c, s := range series {
		for j, r := range s.Records {
			l, err := label(r)
			if err != nil {
				return nil, accessorError("label", c, j, err)
			}
			row, ok := index[l]
			if !ok {
				return nil, fmt.Errorf("%w: label %v of series %d record %d is not a row label", ErrMisalignedSeries, l, c, j)
			}
			v, err := value(r)
			if err != nil {
				return nil, accessorError("value", c, j, err)
			}
			if err := m.Set(row, c, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// ValidateAlignment checks that every series has exactly one record per row
// label, in row label order. Positional placement is only correct for
// series that pass.
func ValidateAlignment[R any, L comparable](rows []L, series []Series[R], label LabelFunc[R, L]) error {
	for i, s := range series {
		if s.Len() != len(rows) {
			return fmt.Errorf(
				"%w: series %d has %d records, expected %d",
				ErrMisalignedSeries,
				i,
				s.Len(),
				len(rows),
			)
		}
		for j, r := range s.Records {
			l, err := label(r)
			if err != nil {
				return accessorError("label", i, j, err)
			}
			if l != rows[j] {
				return fmt.Errorf(
					"%w: series %d record %d has label %v, expected %v",
					ErrMisalignedSeries,
					i,
					j,
					l,
					rows[j],
				)
			}
		}
	}
	return nil
}
