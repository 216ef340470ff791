package bridgeoracle

import (
	"go.uber.org/zap"

	"github.com/bridgeoracle/bridgeoracle-go/types"
)

// Event records a successful verification: which account claimed the
// message and the terminal verified flag.
type Event struct {
	Account  types.AccountID `json:"account"`
	Message  types.Message   `json:"message"`
	Verified bool            `json:"verified"`
}

// EventSink receives verification events. Emit is fire-and-forget and is
// called only after the registry mutation in the same unit of work.
type EventSink interface {
	Emit(e Event)
}

// NopSink discards all events.
type NopSink struct{}

// Emit implements EventSink.
func (NopSink) Emit(Event) {}

// LogSink writes events to a structured logger.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink creates an EventSink that logs each event at info level.
func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

// Emit implements EventSink.
func (s *LogSink) Emit(e Event) {
	s.log.Info("message verified",
		zap.Stringer("account", e.Account),
		zap.Stringer("message", e.Message),
		zap.Bool("verified", e.Verified),
	)
}
