package ports

import (
	"context"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// SignalBus carries advisory connection signals between clients. Delivery is
// best effort: no replay and no acknowledgement.
type SignalBus interface {
	Publish(ctx context.Context, signal domain.ConnectionSignal) error
	// Subscribe returns a channel closed when ctx is done or the bus shuts down.
	Subscribe(ctx context.Context) (<-chan domain.ConnectionSignal, error)
}

// SignalRepository keeps an audit trail of published signals.
type SignalRepository interface {
	InsertSignal(ctx context.Context, signal domain.ConnectionSignal) error
}

// SignalService processes one incoming signal.
type SignalService interface {
	Process(ctx context.Context, signal domain.ConnectionSignal) error
}
