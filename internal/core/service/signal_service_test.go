package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubBus struct {
	publishErr error
	published  []domain.ConnectionSignal
}

func (b *stubBus) Publish(_ context.Context, sig domain.ConnectionSignal) error {
	if b.publishErr != nil {
		return b.publishErr
	}
	b.published = append(b.published, sig)
	return nil
}

func (b *stubBus) Subscribe(_ context.Context) (<-chan domain.ConnectionSignal, error) {
	return nil, errors.New("not implemented")
}

type stubSignalRepo struct {
	insertErr error
	inserted  []domain.ConnectionSignal
}

func (r *stubSignalRepo) InsertSignal(_ context.Context, sig domain.ConnectionSignal) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, sig)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, _ domain.ConnectionSignal) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, sig domain.ConnectionSignal) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, fmt.Sprintf("%d:%s", sig.ID, sig.Status))
	return nil
}

func newSignalSvc(bus *stubBus, repo *stubSignalRepo, dedup *stubDedup) ports.SignalService {
	return NewSignalService(bus, repo, dedup, zerolog.Nop())
}

func validSignal() domain.ConnectionSignal {
	return domain.ConnectionSignal{ID: 42, Status: domain.ConnectionAccepted, TS: 1700000000000}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSignalService_Process_HappyPath(t *testing.T) {
	bus, repo, dedup := &stubBus{}, &stubSignalRepo{}, &stubDedup{}

	if err := newSignalSvc(bus, repo, dedup).Process(context.Background(), validSignal()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(bus.published) != 1 || bus.published[0].ID != 42 {
		t.Errorf("expected signal published, got %v", bus.published)
	}
	if len(repo.inserted) != 1 {
		t.Errorf("expected audit entry inserted")
	}
	if len(dedup.marked) != 1 || dedup.marked[0] != "42:ACCEPTED" {
		t.Errorf("expected dedup key marked, got %v", dedup.marked)
	}
}

func TestSignalService_Process_DuplicateSkipped(t *testing.T) {
	bus, repo := &stubBus{}, &stubSignalRepo{}

	err := newSignalSvc(bus, repo, &stubDedup{dupResult: true}).Process(context.Background(), validSignal())

	if err != nil {
		t.Fatalf("expected nil error for duplicate, got: %v", err)
	}
	if len(bus.published) != 0 || len(repo.inserted) != 0 {
		t.Errorf("expected duplicate to be skipped entirely")
	}
}

func TestSignalService_Process_InvalidSignal(t *testing.T) {
	cases := map[string]domain.ConnectionSignal{
		"zero id":      {Status: domain.ConnectionAccepted, TS: 1},
		"bad status":   {ID: 1, Status: "PENDING", TS: 1},
		"lower status": {ID: 1, Status: "accepted", TS: 1},
		"missing ts":   {ID: 1, Status: domain.ConnectionRejected},
	}
	for name, sig := range cases {
		t.Run(name, func(t *testing.T) {
			bus := &stubBus{}
			err := newSignalSvc(bus, &stubSignalRepo{}, &stubDedup{}).Process(context.Background(), sig)
			if !errors.Is(err, domain.ErrInvalidSignal) {
				t.Errorf("expected ErrInvalidSignal, got %v", err)
			}
			if len(bus.published) != 0 {
				t.Errorf("expected nothing published")
			}
		})
	}
}

func TestSignalService_Process_DedupErrorStillPublishes(t *testing.T) {
	bus := &stubBus{}
	dedup := &stubDedup{dupErr: errors.New("redis down"), markErr: errors.New("redis down")}

	if err := newSignalSvc(bus, &stubSignalRepo{}, dedup).Process(context.Background(), validSignal()); err != nil {
		t.Fatalf("expected no error when dedup is unavailable, got: %v", err)
	}
	if len(bus.published) != 1 {
		t.Errorf("expected signal published despite dedup failure")
	}
}

func TestSignalService_Process_PublishError(t *testing.T) {
	repo := &stubSignalRepo{}
	bus := &stubBus{publishErr: errors.New("connection refused")}

	err := newSignalSvc(bus, repo, &stubDedup{}).Process(context.Background(), validSignal())

	if err == nil {
		t.Fatal("expected publish error to propagate")
	}
	if len(repo.inserted) != 0 {
		t.Errorf("expected no audit entry for unpublished signal")
	}
}

func TestSignalService_Process_AuditErrorIsNonFatal(t *testing.T) {
	bus := &stubBus{}

	err := newSignalSvc(bus, &stubSignalRepo{insertErr: errors.New("mongo down")}, &stubDedup{}).
		Process(context.Background(), validSignal())

	if err != nil {
		t.Fatalf("expected audit failure to be swallowed, got: %v", err)
	}
	if len(bus.published) != 1 {
		t.Errorf("expected signal published")
	}
}

func TestSignalService_Process_NilAudit(t *testing.T) {
	bus := &stubBus{}
	svc := NewSignalService(bus, nil, &stubDedup{}, zerolog.Nop())

	if err := svc.Process(context.Background(), validSignal()); err != nil {
		t.Fatalf("expected no error without audit store, got: %v", err)
	}
}
