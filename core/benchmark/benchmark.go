// Package benchmark provides a named timer registry. A Registry is an owned
// value: create one per scope (a request, a job) and pass it to whoever needs
// to record timings.
package benchmark

import (
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"
)

var (
	// ErrNotStarted is returned for timers that were never started.
	ErrNotStarted = errors.New("benchmark not started")
	// ErrNotStopped is returned when reading a timer that is still running.
	ErrNotStopped = errors.New("benchmark not stopped")
)

type timer struct {
	start time.Time
	stop  time.Time
}

// Registry holds named timers. Safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	now    func() time.Time
	timers map[string]timer
	order  []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		now:    time.Now,
		timers: make(map[string]timer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start starts (or restarts) the named timer.
func (r *Registry) Start(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.timers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.timers[name] = timer{start: r.now()}
}

// Stop stops the named timer.
func (r *Registry) Stop(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotStarted, name)
	}
	t.stop = r.now()
	r.timers[name] = t
	return nil
}

// Measure runs fn between Start and Stop of the named timer.
func (r *Registry) Measure(name string, fn func() error) error {
	r.Start(name)
	defer func() { _ = r.Stop(name) }()
	return fn()
}

// Get returns the elapsed time of a stopped timer.
func (r *Registry) Get(name string) (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(name)
}

func (r *Registry) get(name string) (time.Duration, error) {
	t, ok := r.timers[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotStarted, name)
	}
	if t.stop.IsZero() {
		return 0, fmt.Errorf("%w: %q", ErrNotStopped, name)
	}
	return t.stop.Sub(t.start), nil
}

// All returns the elapsed time of every stopped timer. Running timers are omitted.
func (r *Registry) All() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]time.Duration, len(r.timers))
	for _, name := range r.order {
		if d, err := r.get(name); err == nil {
			out[name] = d
		}
	}
	return out
}

// Names returns timer names in the order they were first started.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Total sums the elapsed time of all stopped timers.
func (r *Registry) Total() time.Duration {
	var total time.Duration
	for d := range maps.Values(r.All()) {
		total += d
	}
	return total
}

// Reset removes every timer.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.timers)
	r.order = r.order[:0]
}
