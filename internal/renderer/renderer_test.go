package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbolytics/seer/internal"
	"github.com/turbolytics/seer/internal/catalog"
	"github.com/turbolytics/seer/internal/dataset"
	"github.com/turbolytics/seer/internal/linechart"
	"github.com/turbolytics/seer/internal/local"
)

type staticSource struct {
	records []*internal.Record
	err     error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Records(ctx context.Context) ([]*internal.Record, error) {
	return s.records, s.err
}

func (s staticSource) Close(ctx context.Context) error { return nil }

type countedSource struct {
	staticSource
	count int
	err   error
}

func (s countedSource) Count(ctx context.Context) (int, error) {
	return s.count, s.err
}

func widgetChart() dataset.Chart {
	return dataset.Chart{
		SeriesLabel: "name",
		DataLabel:   "date",
		DataMethod:  "quantity",
		Options:     linechart.Options{Title: "Widget Quantities"},
	}
}

func readCatalog(t *testing.T, dir string) catalog.Catalog {
	t.Helper()
	bs, err := os.ReadFile(filepath.Join(dir, catalogKey))
	require.NoError(t, err)

	var c catalog.Catalog
	require.NoError(t, json.Unmarshal(bs, &c))
	return c
}

func TestRendererRender(t *testing.T) {
	ctx := context.Background()

	t.Run("writes script and catalog", func(t *testing.T) {
		dir := t.TempDir()
		id := uuid.New()

		r := New(
			WithSource(dataset.NewFileSource("../dataset/testdata/widgets.yml")),
			WithRepository(local.New(dir)),
			WithChart("widgets", widgetChart(), "name"),
		)
		defer r.Close(ctx)

		c, err := r.Render(ctx, id)
		require.NoError(t, err)
		assert.True(t, c.Success)
		assert.Equal(t, 4, c.NumSourceRecords)
		assert.Equal(t, 4, c.NumRecordsProcessed)
		assert.Equal(t, 2, c.NumSeries)
		assert.Equal(t, 3, c.NumRows)
		assert.Equal(t, 0, c.NumExpectedRecords)
		assert.Equal(t, []string{"date", "name", "quantity"}, c.SourceFields)

		script, err := os.ReadFile(filepath.Join(dir, "widgets.html"))
		require.NoError(t, err)
		assert.Contains(t, string(script), `data.addColumn('number', "Widget A");`)
		assert.Contains(t, string(script), `options["title"] = "Widget Quantities";`)

		written := readCatalog(t, dir)
		assert.Equal(t, id, written.ID)
		assert.Equal(t, "widgets", written.Chart)
		assert.Equal(t, "widgets.html", written.Artifact)
		assert.True(t, written.Success)
	})

	t.Run("failed render still writes a catalog", func(t *testing.T) {
		dir := t.TempDir()
		boom := errors.New("connection refused")

		r := New(
			WithSource(staticSource{err: boom}),
			WithRepository(local.New(dir)),
			WithChart("widgets", widgetChart(), "name"),
		)

		c, err := r.Render(ctx, uuid.New())
		assert.ErrorIs(t, err, boom)
		assert.False(t, c.Success)

		written := readCatalog(t, dir)
		assert.False(t, written.Success)
		assert.Contains(t, written.Error, "connection refused")

		_, err = os.Stat(filepath.Join(dir, "widgets.html"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("empty source renders an empty chart", func(t *testing.T) {
		dir := t.TempDir()

		r := New(
			WithSource(staticSource{}),
			WithRepository(local.New(dir)),
			WithChart("empty", widgetChart(), "name"),
		)

		c, err := r.Render(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 0, c.NumSeries)

		script, err := os.ReadFile(filepath.Join(dir, "empty.html"))
		require.NoError(t, err)
		assert.Contains(t, string(script), "data.addRows(0);")
	})

	t.Run("counting source records the expected count", func(t *testing.T) {
		dir := t.TempDir()
		records, err := dataset.NewFileSource("../dataset/testdata/widgets.yml").Records(ctx)
		require.NoError(t, err)

		r := New(
			WithSource(countedSource{staticSource: staticSource{records: records}, count: 4}),
			WithRepository(local.New(dir)),
			WithChart("widgets", widgetChart(), "name"),
		)

		c, err := r.Render(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 4, c.NumExpectedRecords)
		assert.Equal(t, 4, c.NumSourceRecords)

		written := readCatalog(t, dir)
		assert.Equal(t, 4, written.NumExpectedRecords)
	})

	t.Run("failed count fails the render", func(t *testing.T) {
		dir := t.TempDir()
		boom := errors.New("relation does not exist")

		r := New(
			WithSource(countedSource{err: boom}),
			WithRepository(local.New(dir)),
			WithChart("widgets", widgetChart(), "name"),
		)

		c, err := r.Render(ctx, uuid.New())
		assert.ErrorIs(t, err, boom)
		assert.False(t, c.Success)
		assert.False(t, readCatalog(t, dir).Success)
	})
}
