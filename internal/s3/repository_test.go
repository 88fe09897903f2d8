package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r, err := New(
		WithRegion("us-east-1"),
		WithBucket("charts"),
		WithPrefix("seer/run-1"),
		WithEndpoint("http://localhost:4566"),
		WithForcePathStyle(true),
	)
	require.NoError(t, err)

	assert.Equal(t, "charts", r.Bucket)
	assert.True(t, r.ForcePathStyle)
	assert.NotNil(t, r.uploader)
	assert.Equal(t, "seer/run-1/widgets.html", r.Key("widgets.html"))
	assert.NoError(t, r.Flush())
}
