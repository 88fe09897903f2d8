package mongo

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/turbolytics/seer/internal/dataset"
)

func TestNewSource(t *testing.T) {
	ctx := context.Background()
	l := zap.NewNop()

	t.Run("collection and sort are taken off the URI", func(t *testing.T) {
		u, err := url.Parse("mongodb://localhost:27017/shop?collection=widget_stats&sort=date&authSource=admin")
		require.NoError(t, err)

		s, err := NewSource(ctx, u, l)
		require.NoError(t, err)
		assert.Equal(t, "shop.widget_stats", s.Name())
		assert.Equal(t, "date", s.sort)
		assert.Equal(t, "mongodb://localhost:27017/shop?authSource=admin", s.connURI.String())
		assert.NoError(t, s.Close(ctx))
	})

	t.Run("database required", func(t *testing.T) {
		u, err := url.Parse("mongodb://localhost:27017?collection=widget_stats")
		require.NoError(t, err)
		_, err = NewSource(ctx, u, l)
		assert.Error(t, err)
	})

	t.Run("collection required", func(t *testing.T) {
		u, err := url.Parse("mongodb://localhost:27017/shop")
		require.NoError(t, err)
		_, err = NewSource(ctx, u, l)
		assert.Error(t, err)
	})
}

func TestNormalize(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	dec, err := primitive.ParseDecimal128("9.50")
	require.NoError(t, err)

	m := normalize(bson.M{
		"day":      primitive.NewDateTimeFromTime(day),
		"quantity": dec,
		"count":    int32(3),
	})

	assert.Equal(t, day, m["day"])
	assert.Equal(t, "9.50", m["quantity"])
	assert.Equal(t, int32(3), m["count"])
}

func TestIntegrationMongoRecords(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx,
		"mongo:6",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate mongoContainer: %s", err)
		}
	})

	connStr, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connStr))
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	day := func(d int) primitive.DateTime {
		return primitive.NewDateTimeFromTime(time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC))
	}
	_, err = client.Database("shop").Collection("widget_stats").InsertMany(ctx, []any{
		bson.M{"name": "Widget B", "day": day(3), "quantity": 9.5},
		bson.M{"name": "Widget A", "day": day(1), "quantity": 5},
		bson.M{"name": "Widget A", "day": day(2), "quantity": 7},
		bson.M{"name": "Widget B", "day": day(1), "quantity": 2},
	})
	require.NoError(t, err)

	u, err := url.Parse(connStr)
	require.NoError(t, err)
	u.Path = "/shop"
	u.RawQuery = "collection=widget_stats&sort=name"

	source, err := NewSource(ctx, u, zap.NewNop())
	require.NoError(t, err)
	defer source.Close(ctx)

	records, err := source.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)

	series, err := dataset.GroupBy(records, "name")
	require.NoError(t, err)

	d, err := dataset.Chart{
		SeriesLabel: "name",
		DataLabel:   "day",
		DataMethod:  "quantity",
	}.Build(series)
	require.NoError(t, err)

	assert.Equal(t, 3, d.Rows)
	assert.Equal(t, 2, d.Columns)
	assert.Contains(t, d.Statements(), `data.addColumn('number', "Widget A");`)
	assert.Contains(t, d.Statements(), `data.addColumn('number', "Widget B");`)
	assert.Contains(t, d.String(), `, 0, "2024-01-01");`)
	assert.Contains(t, d.String(), `, 2, 9.5);`)
}
