package dataset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbolytics/seer/internal"
)

func TestLabelField(t *testing.T) {
	label := LabelField("date")

	t.Run("string", func(t *testing.T) {
		l, err := label(internal.NewRecord([]string{"date"}, []any{"Jan"}))
		require.NoError(t, err)
		assert.Equal(t, "Jan", l)
	})

	t.Run("date", func(t *testing.T) {
		d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		l, err := label(internal.NewRecord([]string{"date"}, []any{d}))
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", l)
	})

	t.Run("timestamp", func(t *testing.T) {
		d := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		l, err := label(internal.NewRecord([]string{"date"}, []any{d}))
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01T12:30:00Z", l)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := label(internal.NewRecord([]string{"day"}, []any{"Jan"}))
		assert.ErrorIs(t, err, ErrMissingField)
	})
}

func TestValueField(t *testing.T) {
	value := ValueField("quantity")

	for _, tc := range []struct {
		name string
		in   any
		want float64
	}{
		{"int", 5, 5},
		{"int32", int32(7), 7},
		{"int64", int64(-3), -3},
		{"float32", float32(0.5), 0.5},
		{"float64", 2.25, 2.25},
		{"numeric text", "12.50", 12.5},
		{"bytes", []byte("42"), 42},
		{"json number", json.Number("1e3"), 1000},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, err := value(internal.NewRecord([]string{"quantity"}, []any{tc.in}))
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}

	t.Run("not numeric", func(t *testing.T) {
		_, err := value(internal.NewRecord([]string{"quantity"}, []any{"lots"}))
		assert.ErrorIs(t, err, ErrNotNumeric)

		_, err = value(internal.NewRecord([]string{"quantity"}, []any{true}))
		assert.ErrorIs(t, err, ErrNotNumeric)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := value(internal.NewRecord(nil, nil))
		assert.ErrorIs(t, err, ErrMissingField)
	})
}

func TestOwnerLabel(t *testing.T) {
	of := OwnerLabel("name")

	l, ok := of(internal.NewRecord([]string{"name"}, []any{"Widget A"}))
	assert.True(t, ok)
	assert.Equal(t, "Widget A", l)

	_, ok = of(internal.NewRecord([]string{"id"}, []any{1}))
	assert.False(t, ok)

	_, ok = of(nil)
	assert.False(t, ok)

	_, ok = of("Widget A")
	assert.False(t, ok)
}
