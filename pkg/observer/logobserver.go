package observer

import (
	"context"
	"log/slog"

	"github.com/getmockd/ocpi/internal/id"
	"github.com/getmockd/ocpi/pkg/envelope"
)

// LogObserver writes one structured line per notification.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates a LogObserver writing to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Attach registers the observer for both phases under name.
func (l *LogObserver) Attach(b *Bus, name, pattern string) error {
	if err := b.OnBefore(name, pattern, l.Before); err != nil {
		return err
	}
	if err := b.OnAfter(name, pattern, l.After); err != nil {
		b.Remove(name)
		return err
	}
	return nil
}

// Before logs the start of an operation at debug level. Generated event-tracking
// ids are time-ordered; their embedded time is logged as event_time.
func (l *LogObserver) Before(ctx context.Context, ev BeforeEvent) error {
	attrs := []any{
		"operation", ev.Operation,
		"module", string(ev.Module),
		"request_id", ev.Correlation.RequestID(),
		"correlation_id", ev.Correlation.CorrelationID(),
		"event_tracking_id", ev.Correlation.EventTrackingID(),
	}
	if t, err := id.EventTime(ev.Correlation.EventTrackingID()); err == nil {
		attrs = append(attrs, "event_time", t.UTC())
	}
	l.logger.DebugContext(ctx, "ocpi request", attrs...)
	return nil
}

// After logs the outcome: info for successes, warn for anything else.
func (l *LogObserver) After(ctx context.Context, ev AfterEvent) error {
	attrs := []any{
		"operation", ev.Operation,
		"module", string(ev.Module),
		"result", ev.Result.Kind().String(),
		"elapsed", ev.Elapsed,
		"request_id", ev.Correlation.RequestID(),
		"correlation_id", ev.Correlation.CorrelationID(),
		"event_tracking_id", ev.Correlation.EventTrackingID(),
	}
	if ev.Result.Kind() == envelope.KindSuccess {
		l.logger.InfoContext(ctx, "ocpi response", attrs...)
		return nil
	}
	attrs = append(attrs, "error", ev.Result.Err())
	l.logger.WarnContext(ctx, "ocpi response", attrs...)
	return nil
}
