package queue

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ideaforge/portal-shell/internal/api/metrics"
	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrQueueFull is returned by Enqueue when the owning worker's buffer is full.
var ErrQueueFull = errors.New("signal queue full")

// Dispatcher routes connection signals to a fixed set of workers sharded by
// connection ID, so signals for one connection are published in arrival order.
type Dispatcher struct {
	workers []chan domain.ConnectionSignal
	service ports.SignalService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.SignalService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ConnectionSignal, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ConnectionSignal, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands sig to the worker owning its connection ID without blocking.
func (d *Dispatcher) Enqueue(sig domain.ConnectionSignal) error {
	idx := d.shardIndex(sig.ID)
	select {
	case d.workers[idx] <- sig:
		metrics.SignalsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		metrics.SignalsErrorsTotal.WithLabelValues("queue_full").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a connection ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(id int64) int {
	n := int64(len(d.workers))
	return int(((id % n) + n) % n)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ConnectionSignal) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-ch:
			if !ok {
				return
			}
			metrics.SignalsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.service.Process(ctx, sig)
			metrics.SignalProcessingDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				reason := "publish_failed"
				if errors.Is(err, domain.ErrInvalidSignal) {
					reason = "invalid"
				}
				metrics.SignalsErrorsTotal.WithLabelValues(reason).Inc()
				d.log.Error().Err(err).
					Int64("connection_id", sig.ID).
					Int("worker_id", id).
					Msg("signal processing failed")
				continue
			}
			metrics.SignalsProcessedTotal.WithLabelValues(sig.Status).Inc()
		}
	}
}
