package memstore

import (
	"context"
	"sync"

	"loyalt/internal/models"
)

// ActivityLog is an in-memory bounded FIFO log, newest first.
type ActivityLog struct {
	mu      sync.Mutex
	limit   int
	entries map[string][]*models.ScanActivity
}

func NewActivityLog(limit int) *ActivityLog {
	return &ActivityLog{limit: limit, entries: map[string][]*models.ScanActivity{}}
}

func (l *ActivityLog) Append(ctx context.Context, userID string, entry *models.ScanActivity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := append([]*models.ScanActivity{entry}, l.entries[userID]...)
	if len(entries) > l.limit {
		entries = entries[:l.limit]
	}
	l.entries[userID] = entries
	return nil
}

func (l *ActivityLog) Recent(ctx context.Context, userID string, limit int) ([]*models.ScanActivity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.entries[userID]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	out := make([]*models.ScanActivity, len(entries))
	copy(out, entries)
	return out, nil
}
