package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"tnb-api/core/constants"
	"tnb-api/core/logger"
)

// EventDeduper suppresses replayed webhook events. Best-effort: on any
// backend failure the event is treated as unseen and processed, since the
// confirmation path is idempotent anyway.
type EventDeduper interface {
	AlreadyProcessed(ctx context.Context, eventID string) bool
}

// RedisDeduper remembers processed Stripe event ids with a bounded TTL.
type RedisDeduper struct {
	rdb *redis.Client
}

func NewRedisDeduper(rdb *redis.Client) *RedisDeduper {
	return &RedisDeduper{rdb: rdb}
}

func (d *RedisDeduper) AlreadyProcessed(ctx context.Context, eventID string) bool {
	ttl := time.Duration(constants.WebhookDedupTTLHours) * time.Hour
	set, err := d.rdb.SetNX(ctx, "stripe:event:"+eventID, 1, ttl).Result()
	if err != nil {
		logger.Warn("RedisDeduper:AlreadyProcessed:RedisDown", "event_id", eventID, "error", err)
		return false
	}
	return !set
}
