package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/turbolytics/seer/internal"
	"github.com/turbolytics/seer/internal/catalog"
	"github.com/turbolytics/seer/internal/dataset"
)

const catalogKey = "catalog.json"

// Counter is implemented by sources that can report how many records a
// read will return before reading them.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Option func(*Renderer)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

func WithSource(source internal.Source) Option {
	return func(r *Renderer) {
		r.source = source
	}
}

func WithRepository(repository internal.Repository) Option {
	return func(r *Renderer) {
		r.repository = repository
	}
}

// WithChart sets the chart drawn from the source records. Records are split
// into one series per distinct value of seriesBy.
func WithChart(name string, chart dataset.Chart, seriesBy string) Option {
	return func(r *Renderer) {
		r.name = name
		r.chart = chart
		r.seriesBy = seriesBy
	}
}

// Renderer reads a source, renders its records as a line chart and stores
// the script and a catalog in a repository.
type Renderer struct {
	logger     *zap.Logger
	source     internal.Source
	repository internal.Repository

	name     string
	chart    dataset.Chart
	seriesBy string
}

func New(opts ...Option) *Renderer {
	r := Renderer{
		logger: zap.NewNop(),
		name:   "chart",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return &r
}

func (r *Renderer) Close(ctx context.Context) error {
	return r.source.Close(ctx)
}

// ArtifactKey is the key the rendered script is stored under.
func (r *Renderer) ArtifactKey() string {
	return r.name + ".html"
}

// Render runs one render and returns its catalog. The catalog is written
// to the repository whether or not the render succeeded.
func (r *Renderer) Render(ctx context.Context, id uuid.UUID) (*catalog.Catalog, error) {
	c := catalog.New(id, r.name, r.source.Name())
	l := r.logger.With(
		zap.String("render_id", id.String()),
		zap.String("chart", r.name),
	)

	err := r.render(ctx, c, l)
	c.Complete(err)

	if werr := r.writeCatalog(ctx, c); werr != nil {
		l.Error("writing catalog", zap.Error(werr))
		if err == nil {
			err = werr
		}
	}
	if ferr := r.repository.Flush(); ferr != nil && err == nil {
		err = ferr
	}

	if err != nil {
		l.Error("render failed", zap.Error(err))
		return c, err
	}

	l.Info("render complete",
		zap.Int("num_series", c.NumSeries),
		zap.Int("num_rows", c.NumRows),
		zap.Duration("duration", c.EndTime.Sub(c.StartTime)),
	)
	return c, nil
}

func (r *Renderer) render(ctx context.Context, c *catalog.Catalog, l *zap.Logger) error {
	// 1. Collect data from source
	counter, counted := r.source.(Counter)
	if counted {
		n, err := counter.Count(ctx)
		if err != nil {
			return fmt.Errorf("counting %s: %w", r.source.Name(), err)
		}
		c.NumExpectedRecords = n
	}

	records, err := r.source.Records(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", r.source.Name(), err)
	}
	c.NumSourceRecords = len(records)
	if len(records) > 0 {
		c.SourceFields = records[0].Fields()
	}

	if counted && c.NumExpectedRecords != c.NumSourceRecords {
		l.Warn("source changed while reading",
			zap.Int("num_expected_records", c.NumExpectedRecords),
			zap.Int("num_source_records", c.NumSourceRecords),
		)
	}

	// 2. Split into series and render
	series, err := dataset.GroupBy(records, r.seriesBy)
	if err != nil {
		return err
	}
	c.NumSeries = len(series)
	c.NumRecordsProcessed = dataset.CountRecords(series)

	d, err := r.chart.Build(series)
	if err != nil {
		return err
	}
	c.NumRows = d.Rows
	c.NumStatements = len(d.Statements())

	// 3. Preserve the script
	c.Artifact = r.ArtifactKey()
	l.Debug("writing artifact", zap.String("key", c.Artifact))
	return r.repository.Write(ctx, c.Artifact, strings.NewReader(d.Script()))
}

func (r *Renderer) writeCatalog(ctx context.Context, c *catalog.Catalog) error {
	bs, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return r.repository.Write(ctx, catalogKey, bytes.NewReader(bs))
}
