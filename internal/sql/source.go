package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/xwb1989/sqlparser"
	"go.uber.org/zap"

	"github.com/turbolytics/seer/internal"
)

// ErrNotSelect is returned when the configured query would do anything
// other than read.
var ErrNotSelect = errors.New("query is not a SELECT")

type Source struct {
	DB     *sql.DB
	Schema string
	Table  string
	Query  string

	logger *zap.Logger
}

func (s *Source) Name() string {
	if s.Table == "" {
		return "query"
	}
	return fmt.Sprintf("%s.%s", s.Schema, s.Table)
}

// Validate rejects queries that parse as anything but a SELECT. The parser
// does not understand every Postgres construct, so a query it cannot parse
// is let through for the database to judge.
func (s *Source) Validate() error {
	stmt, err := sqlparser.Parse(s.Query)
	if err != nil {
		s.logger.Debug("query not understood by parser, skipping validation",
			zap.String("query", s.Query),
			zap.Error(err),
		)
		return nil
	}

	switch stmt.(type) {
	case *sqlparser.Select, *sqlparser.Union, *sqlparser.ParenSelect:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrNotSelect, sqlparser.String(stmt))
	}
}

// Count returns the number of rows the query yields. It runs as its own
// statement, so rows written between Count and Records make the two differ.
func (s *Source) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM (%s) AS q`, s.Query)
	row := s.DB.QueryRowContext(ctx, query)
	var c int
	err := row.Scan(&c)
	return c, err
}

func (s *Source) Close(ctx context.Context) error {
	return s.DB.Close()
}

type Snapshot struct {
	rows    *sql.Rows
	columns []string
	query   string
}

func (s *Snapshot) Query() string {
	return s.query
}

func (s *Snapshot) Close() error {
	return s.rows.Close()
}

func (s *Snapshot) Next() (*internal.Record, error) {
	row := s.rows.Next()
	if !row {
		if err := s.rows.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}

	values := make([]any, len(s.columns))
	valuePtrs := make([]any, len(s.columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	err := s.rows.Scan(valuePtrs...)
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		if bs, ok := v.([]byte); ok {
			values[i] = string(bs)
		}
	}

	return internal.NewRecord(s.columns, values), nil
}

func (s *Source) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, s.Query)
	if err != nil {
		return nil, err
	}

	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}

	return &Snapshot{
		rows:    rows,
		columns: columns,
		query:   s.Query,
	}, nil
}

// Records reads the whole query result.
func (s *Source) Records(ctx context.Context) ([]*internal.Record, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer snapshot.Close()

	var records []*internal.Record
	for {
		record, err := snapshot.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	s.logger.Info("query read",
		zap.String("source", s.Name()),
		zap.Int("num_records", len(records)),
	)
	return records, nil
}

type SourceOption func(*Source)

func WithSchema(schema string) SourceOption {
	return func(s *Source) {
		s.Schema = schema
	}
}

func WithTable(table string) SourceOption {
	return func(s *Source) {
		s.Table = table
	}
}

func WithQuery(query string) SourceOption {
	return func(s *Source) {
		s.Query = query
	}
}

func WithLogger(l *zap.Logger) SourceOption {
	return func(s *Source) {
		s.logger = l
	}
}

func NewSource(db *sql.DB, opts ...SourceOption) *Source {
	s := Source{
		DB:     db,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&s)
	}

	if s.Query == "" {
		s.Query = fmt.Sprintf("SELECT * FROM %s.%s", s.Schema, s.Table)
	}

	return &s
}
