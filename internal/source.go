package internal

import "context"

// Source yields the records a chart is drawn from.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]*Record, error)
	Close(ctx context.Context) error
}
