package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/turbolytics/seer/internal"
	"github.com/turbolytics/seer/internal/linechart"
)

var (
	// ErrMissingField is returned when a record has no value for a field
	// an accessor was built for.
	ErrMissingField = errors.New("missing field")

	// ErrNotNumeric is returned when a value field holds something that
	// cannot be plotted.
	ErrNotNumeric = errors.New("value is not numeric")
)

const dateLayout = "2006-01-02"

// LabelField returns an accessor reading field from a record as a row label.
func LabelField(field string) linechart.LabelFunc[*internal.Record, string] {
	return func(r *internal.Record) (string, error) {
		v, ok := r.Get(field)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrMissingField, field)
		}
		return FormatLabel(v), nil
	}
}

// ValueField returns an accessor reading field from a record as a number.
func ValueField(field string) linechart.ValueFunc[*internal.Record] {
	return func(r *internal.Record) (float64, error) {
		v, ok := r.Get(field)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingField, field)
		}
		f, err := ToFloat(v)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", field, err)
		}
		return f, nil
	}
}

// OwnerLabel returns a series label resolver reading field from a series
// owner record.
func OwnerLabel(field string) linechart.SeriesLabelFunc {
	return func(owner any) (string, bool) {
		r, ok := owner.(*internal.Record)
		if !ok || r == nil {
			return "", false
		}
		v, ok := r.Get(field)
		if !ok {
			return "", false
		}
		return FormatLabel(v), true
	}
}

// FormatLabel renders a source value as a row or column label.
func FormatLabel(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(dateLayout)
		}
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

// ToFloat converts the numeric types sources produce into a float64.
// Strings are parsed, which covers numeric columns drivers return as text.
func ToFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		return parseFloat(t)
	case []byte:
		return parseFloat(string(t))
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return f, nil
}
