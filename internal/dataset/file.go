package dataset

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/turbolytics/seer/internal"
)

// Document is the layout of a records file. JSON files are read the same
// way since JSON documents are valid YAML.
type Document struct {
	Records []map[string]any `yaml:"records"`
}

type Option func(*FileSource)

func WithLogger(l *zap.Logger) Option {
	return func(s *FileSource) {
		s.logger = l
	}
}

// FileSource reads records from a local YAML or JSON file.
type FileSource struct {
	path   string
	logger *zap.Logger
}

func NewFileSource(path string, opts ...Option) *FileSource {
	s := &FileSource{
		path:   path,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Records(ctx context.Context) ([]*internal.Record, error) {
	bs, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(bs, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}

	records := make([]*internal.Record, len(doc.Records))
	for i, m := range doc.Records {
		records[i] = internal.NewRecordFromMap(m)
	}

	s.logger.Debug("records loaded",
		zap.String("path", s.path),
		zap.Int("num_records", len(records)),
	)
	return records, nil
}

func (s *FileSource) Close(ctx context.Context) error {
	return nil
}
