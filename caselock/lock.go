// Package caselock serializes merge decisions for reports that land in
// the same geo/time bucket. The search-then-decide-then-write sequence is
// not transactional, so two concurrent reports about the same new incident
// could otherwise both observe "no similar case" and mint two case IDs.
// A short-lived redis lease keyed by a coarse geocell+hour fingerprint
// closes that window between instances.
package caselock

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/intelfusion/case-similarity-api/models"
)

// geocellSize is the bucket edge in degrees, roughly 1km at the equator
const geocellSize = 0.01

const (
	acquireRetries = 40
	retryInterval  = 250 * time.Millisecond
)

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker acquires an advisory lock for a merge-decision fingerprint.
// Acquire blocks until the lock is held or ctx is done and returns a
// release func.
type Locker interface {
	Acquire(ctx context.Context, fingerprint string) (release func(), err error)
}

// Fingerprint buckets a report into a coarse geocell+hour key. Reports
// with no coordinate share a per-category hourly bucket.
func Fingerprint(reportType string, coord *models.Coordinate, timestamp int64) string {
	hour := timestamp / 3600
	if coord == nil {
		return fmt.Sprintf("caselock:%s:none:%d", reportType, hour)
	}
	cellLat := int64(math.Floor(coord.Lat / geocellSize))
	cellLon := int64(math.Floor(coord.Lon / geocellSize))
	return fmt.Sprintf("caselock:%s:%d:%d:%d", reportType, cellLat, cellLon, hour)
}

// RedisLocker implements Locker with a SET NX PX lease
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a redis-backed locker. ttl bounds how long a crashed holder
// can block others.
func New(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

// Acquire polls for the lease. If the lock is still contended after the
// retry budget the caller proceeds without it; the lock is advisory and
// stalling ingestion is worse than the duplicate-case race it mitigates.
func (l *RedisLocker) Acquire(ctx context.Context, fingerprint string) (func(), error) {
	token := uuid.New().String()
	for i := 0; i < acquireRetries; i++ {
		ok, err := l.client.SetNX(ctx, fingerprint, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquiring merge lock: %w", err)
		}
		if ok {
			return func() { l.release(fingerprint, token) }, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	zap.S().Warnw("merge lock contended past retry budget, proceeding unlocked", "fingerprint", fingerprint)
	return func() {}, nil
}

func (l *RedisLocker) release(fingerprint, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{fingerprint}, token).Err(); err != nil && err != redis.Nil {
		zap.S().Warnw("failed to release merge lock", "fingerprint", fingerprint, "error", err)
	}
}

// Noop is used when no redis is configured; the race stays an accepted gap
type Noop struct{}

// Acquire returns immediately with a no-op release
func (Noop) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}
