// Package storage keeps uploaded documents and built presentations for a
// limited time. Every backend expires entries a fixed retention after they
// were written.
package storage

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"github.com/LuckyTW/ppt-creator/internal/infra/config"
	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

const DefaultRetention = 30 * time.Minute

// Object is a stored blob.
type Object struct {
	ID        string
	Name      string
	Data      []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (o *Object) Size() int { return len(o.Data) }

// Store is a blob store with expiring entries. Get returns an
// ErrCodeNotFound AppError for ids that are unknown or expired.
type Store interface {
	Put(ctx context.Context, data []byte, name string) (*Object, error)
	Get(ctx context.Context, id string) (*Object, error)
	Delete(ctx context.Context, id string) error
}

// Sweeper is implemented by backends that have to remove expired entries
// themselves.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

type options struct {
	retention time.Duration
	now       func() time.Time
}

type Option func(*options)

func WithRetention(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.retention = d
		}
	}
}

// WithClock replaces time.Now. Tests use it to move past the retention.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{retention: DefaultRetention, now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// New builds the backend selected by cfg.Type: local (default), redis or s3.
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (Store, error) {
	log = logger.OrNop(log).Named("storage")
	retention := WithRetention(cfg.Retention())

	switch cfg.Type {
	case "", "local":
		return NewLocal(cfg.BasePath, log, retention)

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to connect to redis")
		}
		return NewRedis(client, log, retention), nil

	case "s3":
		if cfg.S3Bucket == "" {
			return nil, errors.New(errors.ErrCodeStorage, "s3 storage needs a bucket")
		}
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.S3Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to load aws config")
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = cfg.S3PathStyle
			if o.Region == "" {
				o.Region = "us-east-1"
			}
		})
		return NewS3(client, cfg.S3Bucket, cfg.S3Prefix, log, retention), nil

	default:
		return nil, errors.New(errors.ErrCodeStorage, fmt.Sprintf("unknown storage type %q", cfg.Type))
	}
}

// RunJanitor sweeps s every interval until ctx is done.
func RunJanitor(ctx context.Context, s Sweeper, every time.Duration, log *logger.Logger) {
	log = logger.OrNop(log)
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				log.Warn("storage sweep failed", "error", err)
				continue
			}
			if n > 0 {
				log.Debug("storage sweep", "removed", n)
			}
		}
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, fmt.Sprintf("file %s not found or expired", id))
}
