package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		r := NewRecord([]string{"date", "quantity"}, []any{"Jan", 5})
		v, ok := r.Get("quantity")
		assert.True(t, ok)
		assert.Equal(t, 5, v)

		_, ok = r.Get("name")
		assert.False(t, ok)
	})

	t.Run("nil record", func(t *testing.T) {
		var r *Record
		_, ok := r.Get("date")
		assert.False(t, ok)
	})

	t.Run("from map sorts fields", func(t *testing.T) {
		r := NewRecordFromMap(map[string]any{"quantity": 5, "date": "Jan", "name": "A"})
		assert.Equal(t, []string{"date", "name", "quantity"}, r.Fields())
		v, ok := r.Get("name")
		assert.True(t, ok)
		assert.Equal(t, "A", v)
	})
}
