package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

const dedupTTL = time.Hour

// SignalDedup provides idempotency checks for connection signals.
// Key format: signal:<id>:<status>:<ts>
type SignalDedup struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSignalDedup(client *redis.Client) *SignalDedup {
	return &SignalDedup{client: client, ttl: dedupTTL}
}

// IsDuplicate reports whether this exact signal was already published.
func (d *SignalDedup) IsDuplicate(ctx context.Context, sig domain.ConnectionSignal) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(sig)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the signal as published; the key expires after an hour.
func (d *SignalDedup) Mark(ctx context.Context, sig domain.ConnectionSignal) error {
	return d.client.Set(ctx, dedupKey(sig), "1", d.ttl).Err()
}

func dedupKey(sig domain.ConnectionSignal) string {
	return fmt.Sprintf("signal:%d:%s:%d", sig.ID, sig.Status, sig.TS)
}
