package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryWrite(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, WithPrefix("run-1"))

	err := r.Write(context.Background(), "charts/widgets.html", strings.NewReader("<script></script>"))
	require.NoError(t, err)
	require.NoError(t, r.Flush())

	bs, err := os.ReadFile(filepath.Join(dir, "run-1", "charts", "widgets.html"))
	require.NoError(t, err)
	assert.Equal(t, "<script></script>", string(bs))
	assert.Equal(t, filepath.Join(dir, "run-1"), r.Dir())
}
