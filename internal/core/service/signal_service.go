package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

// SignalDeduplicator abstracts the idempotency store (Redis).
type SignalDeduplicator interface {
	IsDuplicate(ctx context.Context, signal domain.ConnectionSignal) (bool, error)
	Mark(ctx context.Context, signal domain.ConnectionSignal) error
}

type signalService struct {
	bus   ports.SignalBus
	audit ports.SignalRepository
	dedup SignalDeduplicator
	log   zerolog.Logger
}

// NewSignalService returns a SignalService. audit may be nil.
func NewSignalService(
	bus ports.SignalBus,
	audit ports.SignalRepository,
	dedup SignalDeduplicator,
	log zerolog.Logger,
) ports.SignalService {
	return &signalService{
		bus:   bus,
		audit: audit,
		dedup: dedup,
		log:   log,
	}
}

// Process validates, deduplicates and publishes a single connection signal.
func (s *signalService) Process(ctx context.Context, sig domain.ConnectionSignal) error {
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("process signal: %w", err)
	}

	// 1. Idempotency check: silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, sig)
	if err != nil {
		s.log.Warn().Err(err).Int64("connection_id", sig.ID).Msg("dedup check failed, publishing anyway")
	} else if isDup {
		s.log.Debug().Int64("connection_id", sig.ID).Str("status", sig.Status).Msg("duplicate signal skipped")
		return nil
	}

	// 2. Mark before publishing so a retried request does not fan out twice.
	if markErr := s.dedup.Mark(ctx, sig); markErr != nil {
		s.log.Warn().Err(markErr).Int64("connection_id", sig.ID).Msg("failed to set dedup key")
	}

	// 3. Fan out to listening clients.
	if err := s.bus.Publish(ctx, sig); err != nil {
		return fmt.Errorf("process signal: publish: %w", err)
	}

	// 4. Audit trail (non-fatal on failure).
	if s.audit != nil {
		if err := s.audit.InsertSignal(ctx, sig); err != nil {
			s.log.Warn().Err(err).Int64("connection_id", sig.ID).Msg("failed to insert signal audit entry")
		}
	}

	s.log.Info().
		Int64("connection_id", sig.ID).
		Str("status", sig.Status).
		Msg("signal published")

	return nil
}
