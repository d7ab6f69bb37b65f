package redis_store

import (
	"context"
	"fmt"

	"loyalt/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const DEFAULT_ACTIVITY_LIMIT = 20

func dbKeyScanActivity(userID string) string {
	return fmt.Sprintf("scan_activity:%s", userID)
}

// ActivityLogRedis keeps the most recent scans per user in a redis list,
// newest first, trimmed to a fixed size.
type ActivityLogRedis struct {
	client redis.UniversalClient
	limit  int64
}

func NewActivityLog(client redis.UniversalClient, limit int) *ActivityLogRedis {
	if limit <= 0 {
		limit = DEFAULT_ACTIVITY_LIMIT
	}
	return &ActivityLogRedis{client, int64(limit)}
}

func (l *ActivityLogRedis) Append(ctx context.Context, userID string, entry *models.ScanActivity) error {
	payload, err := msgpack.Marshal(entry)
	if err != nil {
		return err
	}

	key := dbKeyScanActivity(userID)
	if err := l.client.LPush(ctx, key, payload).Err(); err != nil {
		return err
	}

	return l.client.LTrim(ctx, key, 0, l.limit-1).Err()
}

func (l *ActivityLogRedis) Recent(ctx context.Context, userID string, limit int) ([]*models.ScanActivity, error) {
	if limit <= 0 || int64(limit) > l.limit {
		limit = int(l.limit)
	}

	values, err := l.client.LRange(ctx, dbKeyScanActivity(userID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*models.ScanActivity, 0, len(values))
	for _, value := range values {
		var entry models.ScanActivity
		if err := msgpack.Unmarshal([]byte(value), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
