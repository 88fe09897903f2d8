package linechart

import (
	"errors"
)

type point struct {
	Date string
	Qty  float64
}

type widget struct {
	Name string
}

func dateOf(p point) (string, error) {
	return p.Date, nil
}

func qtyOf(p point) (float64, error) {
	return p.Qty, nil
}

func widgetName(owner any) (string, bool) {
	w, ok := owner.(widget)
	if !ok {
		return "", false
	}
	return w.Name, true
}

var errBroken = errors.New("broken record")

func brokenLabel(p point) (string, error) {
	if p.Date == "" {
		return "", errBroken
	}
	return p.Date, nil
}

// salesSeries is the two series example: A covers Jan and Feb, B covers Jan
// and Mar.
func salesSeries() []Series[point] {
	return []Series[point]{
		{
			Owner:   widget{Name: "A"},
			Records: []point{{"Jan", 5}, {"Feb", 7}},
		},
		{
			Owner:   widget{Name: "B"},
			Records: []point{{"Jan", 2}, {"Mar", 9}},
		},
	}
}

func intp(i int) *int {
	return &i
}

func boolp(b bool) *bool {
	return &b
}

func floatp(f float64) *float64 {
	return &f
}
