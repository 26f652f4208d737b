package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ideaforge/portal-shell/internal/api/metrics"
	"github.com/ideaforge/portal-shell/internal/core/domain"
)

const defaultHeartbeat = 30 * time.Second

// SignalDispatcher is the interface the handler uses to enqueue signals.
type SignalDispatcher interface {
	Enqueue(sig domain.ConnectionSignal) error
}

// SignalSubscriber opens a live feed of published signals.
type SignalSubscriber interface {
	Subscribe(ctx context.Context) (<-chan domain.ConnectionSignal, error)
}

// SignalHandler accepts mentor-connection signals and streams them back out to
// listening clients.
type SignalHandler struct {
	dispatcher SignalDispatcher
	subscriber SignalSubscriber
	log        zerolog.Logger
	heartbeat  time.Duration
	now        func() time.Time
}

func NewSignalHandler(dispatcher SignalDispatcher, subscriber SignalSubscriber, log zerolog.Logger) *SignalHandler {
	return &SignalHandler{
		dispatcher: dispatcher,
		subscriber: subscriber,
		log:        log,
		heartbeat:  defaultHeartbeat,
		now:        time.Now,
	}
}

// Publish handles POST /api/signals/mentor-connection: enqueues one signal, returns 202.
//
// @Summary      Announce a mentor-connection status change
// @Tags         signals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      signalRequest  true  "Connection signal"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/signals/mentor-connection [post]
func (h *SignalHandler) Publish(c echo.Context) error {
	var req signalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sig := domain.ConnectionSignal{ID: req.ID, Status: req.Status, TS: req.TS}
	if sig.TS == 0 {
		sig.TS = h.now().UnixMilli()
	}
	if err := h.dispatcher.Enqueue(sig); err != nil {
		h.log.Warn().Err(err).Int64("connection_id", sig.ID).Msg("signal rejected by dispatcher")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "signal queue busy")
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "signal accepted"})
}

// Stream handles GET /api/signals/mentor-connection/stream as Server-Sent
// Events. Only signals published while the stream is open are delivered.
//
// @Summary      Stream mentor-connection signals
// @Tags         signals
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/signals/mentor-connection/stream [get]
func (h *SignalHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	signals, err := h.subscriber.Subscribe(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("signal subscription failed")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "signal stream unavailable")
	}

	subscriberID := uuid.NewString()
	log := h.log.With().Str("subscriber_id", subscriberID).Logger()
	metrics.SignalSubscribers.Inc()
	defer metrics.SignalSubscribers.Dec()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	if err := writeEvent(w, 0, "connected", map[string]string{"subscriber_id": subscriberID}); err != nil {
		return nil
	}
	log.Debug().Msg("signal stream opened")

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	var eventID uint64
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("signal stream closed by client")
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			eventID++
			if err := writeEvent(w, eventID, domain.SignalTopic, sig); err != nil {
				log.Debug().Err(err).Msg("client disconnected during event")
				return nil
			}
		}
	}
}

// writeEvent writes one SSE frame and flushes it. An id of zero is omitted.
func writeEvent(w *echo.Response, id uint64, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
		return fmt.Errorf("write event type: %w", err)
	}
	if id > 0 {
		if _, err := fmt.Fprintf(w, "id: %d\n", id); err != nil {
			return fmt.Errorf("write event id: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write event data: %w", err)
	}
	w.Flush()
	return nil
}
