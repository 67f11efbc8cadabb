package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crpt-client/client/dispatch/domain"

	"github.com/redis/go-redis/v9"
)

type RedisStatsStore struct {
	rdb *redis.Client

	prefix string
	// ttl aplica apenas em chaves de série temporal / por tipo de documento.
	// total é cumulativo e não expira.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackDocTypes bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackDocTypes(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackDocTypes = track }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "dispatch:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record implementa domain.StatsStore acumulando contadores em hashes:
// total cumulativo, bucket por minuto (com TTL) e, opcionalmente, por
// doc_type. Tudo em um único pipeline.
func (s *RedisStatsStore) Record(ctx context.Context, ev domain.CallEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := outcomeField(ev)

	totalKey := s.prefix + ":total"

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, totalKey, field, 1)

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if s.trackDocTypes {
		dt := strings.TrimSpace(ev.DocType)
		if dt != "" {
			typeKey := s.prefix + ":doctype:" + dt
			pipe.HIncrBy(ctx, typeKey, field, 1)
			if s.ttl > 0 {
				pipe.Expire(ctx, typeKey, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}

func outcomeField(ev domain.CallEvent) string {
	if !ev.Admitted {
		return "not_admitted"
	}
	if ev.OK {
		return "ok"
	}
	return "failed"
}
