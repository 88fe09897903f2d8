package config

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/turbolytics/seer/internal"
	"github.com/turbolytics/seer/internal/dataset"
	"github.com/turbolytics/seer/internal/kafka"
	"github.com/turbolytics/seer/internal/local"
	"github.com/turbolytics/seer/internal/mongo"
	"github.com/turbolytics/seer/internal/parquet"
	"github.com/turbolytics/seer/internal/s3"
	lsql "github.com/turbolytics/seer/internal/sql"
	"github.com/turbolytics/seer/internal/stdout"
)

// NewLogger builds the process logger. Without a configured level the
// development logger is used.
func NewLogger(c Logger) (*zap.Logger, error) {
	if c.Level == "" {
		return zap.NewDevelopment()
	}

	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	return cfg.Build()
}

func InitializeSource(ctx context.Context, c Source, l *zap.Logger) (internal.Source, error) {
	switch c.Type {
	case "file":
		return dataset.NewFileSource(c.Path, dataset.WithLogger(l)), nil

	case "postgres":
		db, err := sql.Open("pgx", c.ConnectionString)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return lsql.NewSource(
			db,
			lsql.WithSchema(c.Schema),
			lsql.WithTable(c.Table),
			lsql.WithQuery(c.Query),
			lsql.WithLogger(l),
		), nil

	case "mongodb":
		u, err := url.Parse(c.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("invalid source URL: %w", err)
		}
		return mongo.NewSource(ctx, u, l)

	case "parquet":
		return parquet.NewSource(c.Path, parquet.WithLogger(l)), nil

	default:
		return nil, fmt.Errorf("unknown source type: %s", c.Type)
	}
}

// InitializeRepository builds the configured repository. Artifacts of a
// render are kept apart by prefixing their keys with renderID.
func InitializeRepository(ctx context.Context, c Repository, renderID string, l *zap.Logger) (internal.Repository, error) {
	switch c.Type {
	case "", "stdout":
		return stdout.New(nil), nil

	case "local":
		return local.New(
			c.LocalConfig.Path,
			local.WithPrefix(renderID),
			local.WithLogger(l),
		), nil

	case "s3":
		return s3.New(
			s3.WithLogger(l),
			s3.WithRegion(c.S3Config.Region),
			s3.WithBucket(c.S3Config.Bucket),
			s3.WithEndpoint(c.S3Config.Endpoint),
			s3.WithPrefix(
				path.Join(
					c.S3Config.Prefix,
					renderID,
				),
			),
			s3.WithForcePathStyle(c.S3Config.ForcePathStyle),
		)

	case "kafka":
		u, err := url.Parse(c.KafkaConfig.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid target URL: %w", err)
		}
		r, err := kafka.NewRepository(u, l)
		if err != nil {
			return nil, err
		}
		if err := r.Connect(ctx); err != nil {
			return nil, err
		}
		return r.WithPrefix(renderID), nil

	default:
		return nil, fmt.Errorf("unknown repository type: %s", c.Type)
	}
}
