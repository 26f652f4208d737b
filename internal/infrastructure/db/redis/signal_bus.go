package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

const subscriberBuffer = 16

// SignalBus fans connection signals out over Redis pub/sub. Delivery is best
// effort: a subscriber that is not listening at publish time never sees the
// signal.
type SignalBus struct {
	client  *redis.Client
	channel string
	log     zerolog.Logger
}

func NewSignalBus(client *redis.Client, log zerolog.Logger) *SignalBus {
	return &SignalBus{client: client, channel: domain.SignalTopic, log: log}
}

func (b *SignalBus) Publish(ctx context.Context, sig domain.ConnectionSignal) error {
	payload, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("encode signal: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish signal: %w", err)
	}
	return nil
}

// Subscribe returns once the subscription is confirmed. The channel is closed
// when ctx is cancelled. Malformed payloads are logged and dropped.
func (b *SignalBus) Subscribe(ctx context.Context) (<-chan domain.ConnectionSignal, error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	out := make(chan domain.ConnectionSignal, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var sig domain.ConnectionSignal
				if err := json.Unmarshal([]byte(msg.Payload), &sig); err != nil {
					b.log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed signal")
					continue
				}
				select {
				case out <- sig:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
