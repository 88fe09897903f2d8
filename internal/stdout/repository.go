package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Repository prints artifacts instead of storing them.
type Repository struct {
	w io.Writer
}

func New(w io.Writer) *Repository {
	if w == nil {
		w = os.Stdout
	}
	return &Repository{w: w}
}

func (r *Repository) Write(ctx context.Context, key string, reader io.Reader) error {
	if _, err := fmt.Fprintf(r.w, "-- %s\n", key); err != nil {
		return err
	}
	_, err := io.Copy(r.w, reader)
	return err
}

func (r *Repository) Flush() error {
	return nil
}
