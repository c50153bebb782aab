package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/infra/metrics"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

const (
	backendRedis = "redis"
	redisPrefix  = "ppt-creator:blob:"
)

// redisClient is the subset of redis.Cmdable the store needs.
type redisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis stores each blob under one key written with SET ... EX, so redis
// expires entries on its own.
type Redis struct {
	client redisClient
	opts   options
	logger *logger.Logger
}

type redisRecord struct {
	Name      string    `json:"name"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewRedis(client redisClient, log *logger.Logger, opts ...Option) *Redis {
	return &Redis{
		client: client,
		opts:   buildOptions(opts),
		logger: logger.OrNop(log),
	}
}

func (s *Redis) Put(ctx context.Context, data []byte, name string) (*Object, error) {
	id := util.NewID()
	now := s.opts.now()
	rec := redisRecord{
		Name:      name,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.retention),
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to encode blob")
	}

	if err := s.client.Set(ctx, redisPrefix+id, payload, s.opts.retention).Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to write blob to redis")
	}

	metrics.IncStorage(backendRedis, "put")
	s.logger.Info("saved file to redis", "id", id, "size", len(data))

	return &Object{ID: id, Name: name, Data: data, CreatedAt: rec.CreatedAt, ExpiresAt: rec.ExpiresAt}, nil
}

func (s *Redis) Get(ctx context.Context, id string) (*Object, error) {
	payload, err := s.client.Get(ctx, redisPrefix+id).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			metrics.IncStorage(backendRedis, "miss")
			return nil, notFound(id)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to read blob from redis")
	}

	var rec redisRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "corrupt blob record")
	}
	// The key TTL normally wins; this covers an injected clock.
	if !s.opts.now().Before(rec.ExpiresAt) {
		metrics.IncStorage(backendRedis, "expire")
		_ = s.Delete(ctx, id)
		return nil, notFound(id)
	}

	metrics.IncStorage(backendRedis, "get")
	return &Object{ID: id, Name: rec.Name, Data: rec.Data, CreatedAt: rec.CreatedAt, ExpiresAt: rec.ExpiresAt}, nil
}

func (s *Redis) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisPrefix+id).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorage, "failed to delete blob from redis")
	}
	return nil
}
