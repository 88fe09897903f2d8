package internal

import (
	"context"
	"io"
)

// Repository stores rendered artifacts under a key.
type Repository interface {
	Write(ctx context.Context, path string, reader io.Reader) error
	Flush() error
}
