package ledger

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
)

// EventSink receives the structured record of a committed mutation.
// Records arrive in commit order, exactly once each.
type EventSink interface {
	Record(ctx context.Context, ev domain.Event)
}

// SinkFunc adapts a function to the EventSink interface.
type SinkFunc func(ctx context.Context, ev domain.Event)

func (f SinkFunc) Record(ctx context.Context, ev domain.Event) { f(ctx, ev) }

// NopSink discards every event.
func NopSink() EventSink {
	return SinkFunc(func(context.Context, domain.Event) {})
}

// LogSink writes each event as a structured log line, the shape external
// indexers consume.
func LogSink(logger zerolog.Logger) EventSink {
	return SinkFunc(func(ctx context.Context, ev domain.Event) {
		logger.Info().
			Str("event_id", ev.ID).
			Str("kind", string(ev.Kind)).
			Uint64("campaign_id", ev.CampaignID).
			Str("actor", string(ev.Actor)).
			Uint64("amount", ev.Amount).
			Str("reason", ev.Reason).
			Time("at", ev.At).
			Msg("ledger event")
	})
}

// MemorySink retains events in memory, in commit order.
type MemorySink struct {
	mu     sync.Mutex
	events []domain.Event
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

// Record implements EventSink.
func (m *MemorySink) Record(ctx context.Context, ev domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

// Events returns a copy of everything recorded so far.
func (m *MemorySink) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Event(nil), m.events...)
}

// MultiSink fans each event out to every sink in order.
func MultiSink(sinks ...EventSink) EventSink {
	return SinkFunc(func(ctx context.Context, ev domain.Event) {
		for _, s := range sinks {
			s.Record(ctx, ev)
		}
	})
}
