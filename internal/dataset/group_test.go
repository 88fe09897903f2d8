package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbolytics/seer/internal"
	"github.com/turbolytics/seer/internal/linechart"
)

func widgetRecords(t *testing.T) []*internal.Record {
	t.Helper()
	records, err := NewFileSource("testdata/widgets.yml").Records(context.Background())
	require.NoError(t, err)
	return records
}

func TestGroupBy(t *testing.T) {
	t.Run("series in first seen order", func(t *testing.T) {
		series, err := GroupBy(widgetRecords(t), "name")
		require.NoError(t, err)
		require.Len(t, series, 2)

		name := OwnerLabel("name")
		a, ok := name(series[0].Owner)
		require.True(t, ok)
		assert.Equal(t, "Widget A", a)
		b, ok := name(series[1].Owner)
		require.True(t, ok)
		assert.Equal(t, "Widget B", b)

		assert.Equal(t, 2, series[0].Len())
		assert.Equal(t, 2, series[1].Len())
		assert.Equal(t, 4, CountRecords(series))
	})

	t.Run("owner carries fields besides the grouping field", func(t *testing.T) {
		records := []*internal.Record{
			internal.NewRecordFromMap(map[string]any{"widget_id": 1, "name": "Widget A", "date": "Jan", "quantity": 5}),
			internal.NewRecordFromMap(map[string]any{"widget_id": 2, "name": "Widget B", "date": "Jan", "quantity": 2}),
			internal.NewRecordFromMap(map[string]any{"widget_id": 1, "name": "Widget A", "date": "Feb", "quantity": 7}),
		}

		series, err := GroupBy(records, "widget_id")
		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Same(t, records[0], series[0].Owner)

		d, err := Chart{
			SeriesLabel: "name",
			DataLabel:   "date",
			DataMethod:  "quantity",
		}.Build(series)
		require.NoError(t, err)

		stmts := d.Statements()
		assert.Contains(t, stmts, `data.addColumn('number', "Widget A");`)
		assert.Contains(t, stmts, `data.addColumn('number', "Widget B");`)
		assert.NotContains(t, stmts, `data.addColumn('number', "name");`)
	})

	t.Run("no field means one series", func(t *testing.T) {
		series, err := GroupBy(widgetRecords(t), "")
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Nil(t, series[0].Owner)
		assert.Equal(t, 4, series[0].Len())
	})

	t.Run("no records", func(t *testing.T) {
		series, err := GroupBy(nil, "name")
		require.NoError(t, err)
		assert.Empty(t, series)
	})

	t.Run("record without the field", func(t *testing.T) {
		records := []*internal.Record{internal.NewRecord([]string{"date"}, []any{"Jan"})}
		_, err := GroupBy(records, "name")
		assert.ErrorIs(t, err, ErrMissingField)
	})
}

func TestChartBuild(t *testing.T) {
	series, err := GroupBy(widgetRecords(t), "name")
	require.NoError(t, err)

	chart := Chart{
		SeriesLabel: "name",
		DataLabel:   "date",
		DataMethod:  "quantity",
		InElement:   "widgets",
	}

	d, err := chart.Build(series)
	require.NoError(t, err)

	stmts := d.Statements()
	assert.Contains(t, stmts, `data.addRows(3);`)
	assert.Contains(t, stmts, `data.addColumn('number', "Widget A");`)
	assert.Contains(t, stmts, `data.addColumn('number', "Widget B");`)
	assert.Contains(t, stmts, `data.setCell(2, 0, "Mar");`)
	assert.Contains(t, stmts, `data.setCell(2, 2, 9);`)
	assert.Contains(t, stmts, `var container = document.getElementById("widgets");`)

	t.Run("static series label", func(t *testing.T) {
		chart := chart
		chart.SeriesLabel = "Quantity"
		d, err := chart.Build(series)
		require.NoError(t, err)
		assert.Contains(t, d.Statements(), `data.addColumn('number', "Quantity");`)
	})

	t.Run("positional with gaps", func(t *testing.T) {
		chart := chart
		chart.Placement = linechart.Positional
		_, err := chart.Build(series)
		assert.ErrorIs(t, err, linechart.ErrMisalignedSeries)
	})
}
