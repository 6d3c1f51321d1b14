package observer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getmockd/ocpi/pkg/correlation"
	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/logging"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

var (
	// ErrDuplicateName is returned when a name is already registered for a phase.
	ErrDuplicateName = errors.New("observer name already registered")

	// ErrInvalidPattern is returned for malformed operation patterns.
	ErrInvalidPattern = errors.New("invalid operation pattern")
)

// Phase tells before and after notifications apart.
type Phase string

// Phases.
const (
	PhaseBefore Phase = "before"
	PhaseAfter  Phase = "after"
)

// BeforeEvent is delivered before the endpoint is resolved.
type BeforeEvent struct {
	Operation   string
	Module      ocpi.ModuleID
	Correlation correlation.Context
	Args        any
}

// AfterEvent is delivered once the response is final.
type AfterEvent struct {
	Operation   string
	Module      ocpi.ModuleID
	Correlation correlation.Context
	Args        any
	Result      envelope.Result
	Elapsed     time.Duration
}

// BeforeFunc observes a BeforeEvent.
type BeforeFunc func(ctx context.Context, ev BeforeEvent) error

// AfterFunc observes an AfterEvent.
type AfterFunc func(ctx context.Context, ev AfterEvent) error

// ErrorHandler receives observer failures.
type ErrorHandler func(name, operation string, phase Phase, err error)

// Registration describes one registered observer.
type Registration struct {
	Name    string
	Pattern string
	Phase   Phase
}

type entry[F any] struct {
	Registration
	fn F
}

// Bus dispatches notifications to observers.
type Bus struct {
	mu     sync.RWMutex
	before []entry[BeforeFunc]
	after  []entry[AfterFunc]

	logger  *slog.Logger
	onError ErrorHandler

	qmu       sync.RWMutex // guards closed against sends on queue
	queue     chan func()
	done      chan struct{}
	closed    bool
	closeOnce sync.Once
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger of the default ErrorHandler.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithErrorHandler replaces the default ErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(b *Bus) {
		b.onError = h
	}
}

// WithAsync dispatches notifications on a background goroutine with a queue of
// the given size. Producers block when the queue is full.
func WithAsync(queueSize int) Option {
	return func(b *Bus) {
		if queueSize < 1 {
			queueSize = 1
		}
		b.queue = make(chan func(), queueSize)
	}
}

// New creates a Bus.
func New(opts ...Option) *Bus {
	b := &Bus{logger: logging.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	if b.onError == nil {
		b.onError = b.logError
	}
	if b.queue != nil {
		b.done = make(chan struct{})
		go b.dispatch()
	}
	return b
}

func (b *Bus) logError(name, operation string, phase Phase, err error) {
	b.logger.Warn("exception in observer",
		"observer", name,
		"operation", operation,
		"phase", string(phase),
		"error", err,
	)
}

// OnBefore registers fn under name for operations matching pattern.
func (b *Bus) OnBefore(name, pattern string, fn BeforeFunc) error {
	reg, err := newRegistration(name, pattern, PhaseBefore)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if hasName(b.before, name) {
		return fmt.Errorf("%w: %s (%s)", ErrDuplicateName, name, PhaseBefore)
	}
	b.before = appendCopy(b.before, entry[BeforeFunc]{reg, fn})
	return nil
}

// OnAfter registers fn under name for operations matching pattern.
func (b *Bus) OnAfter(name, pattern string, fn AfterFunc) error {
	reg, err := newRegistration(name, pattern, PhaseAfter)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if hasName(b.after, name) {
		return fmt.Errorf("%w: %s (%s)", ErrDuplicateName, name, PhaseAfter)
	}
	b.after = appendCopy(b.after, entry[AfterFunc]{reg, fn})
	return nil
}

// Remove unregisters name from both phases. It reports whether anything was removed.
func (b *Bus) Remove(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	var removed bool
	b.before, removed = without(b.before, name)
	var removedAfter bool
	b.after, removedAfter = without(b.after, name)
	return removed || removedAfter
}

// Registrations lists the registered observers sorted by phase and name.
func (b *Bus) Registrations() []Registration {
	b.mu.RLock()
	out := make([]Registration, 0, len(b.before)+len(b.after))
	for _, e := range b.before {
		out = append(out, e.Registration)
	}
	for _, e := range b.after {
		out = append(out, e.Registration)
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Phase != out[j].Phase {
			return out[i].Phase > out[j].Phase // before, then after
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Before notifies the before observers matching ev.Operation.
func (b *Bus) Before(ctx context.Context, ev BeforeEvent) {
	b.mu.RLock()
	observers := b.before
	b.mu.RUnlock()

	b.submit(ctx, func(ctx context.Context) {
		for _, e := range observers {
			if !matches(e.Pattern, ev.Operation) {
				continue
			}
			b.invoke(e.Name, ev.Operation, PhaseBefore, func() error { return e.fn(ctx, ev) })
		}
	})
}

// After notifies the after observers matching ev.Operation.
func (b *Bus) After(ctx context.Context, ev AfterEvent) {
	b.mu.RLock()
	observers := b.after
	b.mu.RUnlock()

	b.submit(ctx, func(ctx context.Context) {
		for _, e := range observers {
			if !matches(e.Pattern, ev.Operation) {
				continue
			}
			b.invoke(e.Name, ev.Operation, PhaseAfter, func() error { return e.fn(ctx, ev) })
		}
	})
}

// Close stops the async dispatcher after draining queued notifications. It is a
// no-op for synchronous buses. Notifications submitted after Close are delivered
// synchronously.
func (b *Bus) Close() error {
	if b.queue == nil {
		return nil
	}
	b.closeOnce.Do(func() {
		b.qmu.Lock()
		b.closed = true
		close(b.queue)
		b.qmu.Unlock()
		<-b.done
	})
	return nil
}

func (b *Bus) submit(ctx context.Context, notify func(context.Context)) {
	if b.queue == nil {
		notify(ctx)
		return
	}

	// the operation may return and cancel ctx before the observer runs
	detached := context.WithoutCancel(ctx)
	b.qmu.RLock()
	if b.closed {
		b.qmu.RUnlock()
		notify(detached)
		return
	}
	b.queue <- func() { notify(detached) }
	b.qmu.RUnlock()
}

func (b *Bus) dispatch() {
	defer close(b.done)
	for fn := range b.queue {
		fn()
	}
}

// invoke runs fn, turning errors and panics into ErrorHandler calls.
func (b *Bus) invoke(name, operation string, phase Phase, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			b.report(name, operation, phase, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := fn(); err != nil {
		b.report(name, operation, phase, err)
	}
}

// report shields the bus from a panicking ErrorHandler.
func (b *Bus) report(name, operation string, phase Phase, err error) {
	defer func() { _ = recover() }()
	b.onError(name, operation, phase, err)
}

func newRegistration(name, pattern string, phase Phase) (Registration, error) {
	if name == "" {
		return Registration{}, errors.New("observer name must not be empty")
	}
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return Registration{}, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	return Registration{Name: name, Pattern: pattern, Phase: phase}, nil
}

func matches(pattern, operation string) bool {
	if pattern == "" || pattern == "**" {
		return true
	}
	ok, err := doublestar.Match(pattern, operation)
	return err == nil && ok
}

func hasName[F any](entries []entry[F], name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// appendCopy never mutates the backing array of a slice a dispatcher may be reading.
func appendCopy[F any](entries []entry[F], e entry[F]) []entry[F] {
	out := make([]entry[F], 0, len(entries)+1)
	out = append(out, entries...)
	return append(out, e)
}

func without[F any](entries []entry[F], name string) ([]entry[F], bool) {
	out := make([]entry[F], 0, len(entries))
	for _, e := range entries {
		if e.Name != name {
			out = append(out, e)
		}
	}
	return out, len(out) != len(entries)
}
