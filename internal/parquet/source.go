package parquet

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"go.uber.org/zap"

	"github.com/turbolytics/seer/internal"
)

type Option func(*Source)

func WithLogger(l *zap.Logger) Option {
	return func(s *Source) {
		s.logger = l
	}
}

func WithParallelism(n int) Option {
	return func(s *Source) {
		s.parallelism = n
	}
}

// Source reads every row of a local parquet file.
type Source struct {
	path        string
	parallelism int
	logger      *zap.Logger
}

func NewSource(path string, opts ...Option) *Source {
	s := &Source{
		path:        path,
		parallelism: 4,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Name() string {
	return "parquet:" + s.path
}

func (s *Source) Records(ctx context.Context) ([]*internal.Record, error) {
	fr, err := local.NewLocalFileReader(s.path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, nil, int64(s.parallelism))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer pr.ReadStop()

	num := int(pr.GetNumRows())
	rows, err := pr.ReadByNumber(num)
	if err != nil {
		return nil, err
	}

	// Without a predefined schema rows come back as generated structs;
	// going through JSON turns them into plain documents.
	bs, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	var docs []map[string]any
	if err := json.Unmarshal(bs, &docs); err != nil {
		return nil, err
	}

	records := make([]*internal.Record, len(docs))
	for i, doc := range docs {
		records[i] = internal.NewRecordFromMap(columnNames(doc))
	}

	s.logger.Info("parquet file read",
		zap.String("path", s.path),
		zap.Int("num_records", len(records)))
	return records, nil
}

func (s *Source) Close(ctx context.Context) error {
	return nil
}

// columnNames undoes the upper casing of the first letter the reader applies
// to column names when it generates row structs.
func columnNames(doc map[string]any) map[string]any {
	m := make(map[string]any, len(doc))
	for k, v := range doc {
		m[lowerFirst(k)] = v
	}
	return m
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
