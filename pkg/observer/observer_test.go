package observer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/getmockd/ocpi/pkg/correlation"
	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failure struct {
	name, operation string
	phase           Phase
	err             error
}

type failureLog struct {
	mu   sync.Mutex
	list []failure
}

func (f *failureLog) handler(name, operation string, phase Phase, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = append(f.list, failure{name, operation, phase, err})
}

func (f *failureLog) all() []failure {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]failure(nil), f.list...)
}

func beforeEvent(op string) BeforeEvent {
	return BeforeEvent{
		Operation:   op,
		Module:      ocpi.ModuleLocations,
		Correlation: correlation.New(correlation.Overrides{RequestID: "req"}, 0),
	}
}

func afterEvent(op string) AfterEvent {
	b := beforeEvent(op)
	return AfterEvent{
		Operation:   b.Operation,
		Module:      b.Module,
		Correlation: b.Correlation,
		Result:      envelope.Success(envelope.Empty{}, "req", "corr"),
	}
}

func TestBus_FailingObserverIsIsolated(t *testing.T) {
	var failures failureLog
	bus := New(WithErrorHandler(failures.handler))

	var called atomic.Int32
	require.NoError(t, bus.OnBefore("broken", "", func(context.Context, BeforeEvent) error {
		return errors.New("boom")
	}))
	require.NoError(t, bus.OnBefore("panicky", "", func(context.Context, BeforeEvent) error {
		panic("kaboom")
	}))
	require.NoError(t, bus.OnBefore("recorder", "", func(context.Context, BeforeEvent) error {
		called.Add(1)
		return nil
	}))

	assert.NotPanics(t, func() { bus.Before(context.Background(), beforeEvent("locations/GetLocation")) })
	assert.Equal(t, int32(1), called.Load())

	got := failures.all()
	require.Len(t, got, 2)
	assert.Equal(t, "broken", got[0].name)
	assert.Equal(t, "locations/GetLocation", got[0].operation)
	assert.Equal(t, PhaseBefore, got[0].phase)
	assert.EqualError(t, got[0].err, "boom")
	assert.Equal(t, "panicky", got[1].name)
	assert.Contains(t, got[1].err.Error(), "kaboom")
}

func TestBus_PanickingErrorHandler(t *testing.T) {
	bus := New(WithErrorHandler(func(string, string, Phase, error) { panic("handler broke") }))
	var called bool
	require.NoError(t, bus.OnAfter("broken", "", func(context.Context, AfterEvent) error { return errors.New("x") }))
	require.NoError(t, bus.OnAfter("ok", "", func(context.Context, AfterEvent) error { called = true; return nil }))

	assert.NotPanics(t, func() { bus.After(context.Background(), afterEvent("tariffs/GetTariff")) })
	assert.True(t, called)
}

func TestBus_DefaultErrorHandlerLogs(t *testing.T) {
	var buf bytes.Buffer
	bus := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, bus.OnAfter("auditor", "", func(context.Context, AfterEvent) error {
		return errors.New("disk full")
	}))

	bus.After(context.Background(), afterEvent("cdrs/PostCDR"))

	out := buf.String()
	assert.Contains(t, out, "exception in observer")
	assert.Contains(t, out, "observer=auditor")
	assert.Contains(t, out, "operation=cdrs/PostCDR")
	assert.Contains(t, out, "disk full")
}

func TestBus_Patterns(t *testing.T) {
	bus := New()
	var seen []string
	var mu sync.Mutex
	record := func(tag string) BeforeFunc {
		return func(_ context.Context, ev BeforeEvent) error {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, tag+":"+ev.Operation)
			return nil
		}
	}
	require.NoError(t, bus.OnBefore("locations", "locations/*", record("loc")))
	require.NoError(t, bus.OnBefore("patches", "*/Patch*", record("patch")))
	require.NoError(t, bus.OnBefore("exact", "tariffs/GetTariff", record("exact")))

	bus.Before(context.Background(), beforeEvent("locations/PatchEVSE"))
	bus.Before(context.Background(), beforeEvent("tariffs/GetTariff"))
	bus.Before(context.Background(), beforeEvent("sessions/GetSession"))

	assert.Equal(t, []string{"loc:locations/PatchEVSE", "patch:locations/PatchEVSE", "exact:tariffs/GetTariff"}, seen)
}

func TestBus_Registration(t *testing.T) {
	bus := New()
	noopBefore := func(context.Context, BeforeEvent) error { return nil }
	noopAfter := func(context.Context, AfterEvent) error { return nil }

	require.NoError(t, bus.OnBefore("a", "", noopBefore))
	require.NoError(t, bus.OnAfter("a", "", noopAfter))
	require.NoError(t, bus.OnAfter("b", "sessions/*", noopAfter))

	err := bus.OnBefore("a", "", noopBefore)
	assert.ErrorIs(t, err, ErrDuplicateName)

	err = bus.OnBefore("bad", "locations/[", noopBefore)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	assert.Error(t, bus.OnBefore("", "", noopBefore))

	assert.Equal(t, []Registration{
		{Name: "a", Pattern: "", Phase: PhaseBefore},
		{Name: "a", Pattern: "", Phase: PhaseAfter},
		{Name: "b", Pattern: "sessions/*", Phase: PhaseAfter},
	}, bus.Registrations())

	assert.True(t, bus.Remove("a"))
	assert.False(t, bus.Remove("a"))
	assert.Len(t, bus.Registrations(), 1)
}

func TestBus_RemovedObserverNotCalled(t *testing.T) {
	bus := New()
	var calls int
	require.NoError(t, bus.OnAfter("counter", "", func(context.Context, AfterEvent) error { calls++; return nil }))

	bus.After(context.Background(), afterEvent("tokens/GetTokens"))
	bus.Remove("counter")
	bus.After(context.Background(), afterEvent("tokens/GetTokens"))

	assert.Equal(t, 1, calls)
}

func TestBus_AsyncPreservesOrder(t *testing.T) {
	bus := New(WithAsync(4))

	var mu sync.Mutex
	var order []string
	require.NoError(t, bus.OnBefore("rec", "", func(_ context.Context, ev BeforeEvent) error {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, "before:"+ev.Operation)
		return nil
	}))
	require.NoError(t, bus.OnAfter("rec", "", func(ctx context.Context, ev AfterEvent) error {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, "after:"+ev.Operation)
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	for _, op := range []string{"a/One", "a/Two", "a/Three"} {
		bus.Before(ctx, beforeEvent(op))
		bus.After(ctx, afterEvent(op))
	}
	cancel()
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	assert.Equal(t, []string{
		"before:a/One", "after:a/One",
		"before:a/Two", "after:a/Two",
		"before:a/Three", "after:a/Three",
	}, order)

	// delivered synchronously once closed
	bus.Before(context.Background(), beforeEvent("a/Four"))
	assert.Equal(t, "before:a/Four", order[len(order)-1])
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	bus := New()
	require.NoError(t, NewLogObserver(logger).Attach(bus, "log", ""))

	bus.Before(context.Background(), beforeEvent("locations/GetLocation"))
	failed := afterEvent("locations/GetLocation")
	failed.Result = envelope.Exception[envelope.Empty](context.DeadlineExceeded, "req", "corr")
	bus.After(context.Background(), failed)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG msg=\"ocpi request\"")
	assert.Contains(t, out, "request_id=req")
	assert.Contains(t, out, "level=WARN msg=\"ocpi response\"")
	assert.Contains(t, out, "result=transport_exception")

	assert.Error(t, NewLogObserver(logger).Attach(bus, "log", ""))
}

func TestLogObserver_EventTime(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLogObserver(logger)

	require.NoError(t, obs.Before(context.Background(), beforeEvent("tariffs/GetTariff")))
	assert.Contains(t, buf.String(), "event_time=")

	buf.Reset()
	supplied := BeforeEvent{
		Operation:   "tariffs/GetTariff",
		Module:      ocpi.ModuleTariffs,
		Correlation: correlation.New(correlation.Overrides{EventTrackingID: "evt-42"}, 0),
	}
	require.NoError(t, obs.Before(context.Background(), supplied))
	assert.Contains(t, buf.String(), "event_tracking_id=evt-42")
	assert.NotContains(t, buf.String(), "event_time=")
}
