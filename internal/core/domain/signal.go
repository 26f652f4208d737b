package domain

import "fmt"

// SignalTopic names the advisory channel other open clients listen on to
// refresh their mentor-connection lists.
const SignalTopic = "mentor-connection-updated"

const (
	ConnectionAccepted = "ACCEPTED"
	ConnectionRejected = "REJECTED"
)

// ConnectionSignal announces that a mentor-connection changed status. It is a
// hint to refresh, not an authoritative state change. TS is in Unix
// milliseconds.
type ConnectionSignal struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	TS     int64  `json:"ts"`
}

// Validate checks the envelope shape.
func (s ConnectionSignal) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidSignal)
	}
	if s.Status != ConnectionAccepted && s.Status != ConnectionRejected {
		return fmt.Errorf("%w: unsupported status %q", ErrInvalidSignal, s.Status)
	}
	if s.TS <= 0 {
		return fmt.Errorf("%w: ts must be set", ErrInvalidSignal)
	}
	return nil
}
