// Package dispatch lets any goroutine run an operation on the host goroutine
// and wait for its result.
//
// A caller submits an operation, the dispatcher wakes the host through its
// Notifier, and the host loop calls RunPending on its own goroutine. Only one
// request may be in flight at a time.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// NoTimeout makes Await wait until the request completes or ctx is done.
const NoTimeout time.Duration = -1

// Status is what RunPending reports to the host loop. It says whether
// dispatch worked, not whether the operation succeeded.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
)

func (s Status) String() string {
	if s == StatusSucceeded {
		return "succeeded"
	}
	return "failed"
}

// Notifier wakes the host loop. Notify must not block on the host and
// returns an error when the host cannot be reached.
type Notifier interface {
	Notify() error
}

// Option configures a Dispatcher.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Dispatcher bridges caller goroutines to the host goroutine. H is the
// capability handed to operations on the host side.
type Dispatcher[H any] struct {
	notifier Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	current *Request[H]
}

// New creates a dispatcher that wakes the host through notifier. A nil
// notifier makes every Submit fail with an *UnavailableError.
func New[H any](notifier Notifier, opts ...Option) *Dispatcher[H] {
	s := settings{logger: slog.Default().With("component", "dispatch")}
	for _, opt := range opts {
		opt(&s)
	}
	return &Dispatcher[H]{notifier: notifier, logger: s.logger}
}

// Submit queues op and wakes the host. It fails with ErrRequestInFlight if
// another request is current, and with *UnavailableError if the host cannot
// be woken, in which case nothing stays queued.
func (d *Dispatcher[H]) Submit(op Operation[H], args ...any) (*Request[H], error) {
	if op == nil {
		return nil, ErrNilOperation
	}
	req := newRequest(op, args)

	d.mu.Lock()
	if d.current != nil {
		inFlight := d.current.id
		d.mu.Unlock()
		d.logger.Warn("submit rejected", "request_id", req.id, "in_flight", inFlight)
		return nil, ErrRequestInFlight
	}
	req.state.Store(int32(StateQueued))
	d.current = req
	d.mu.Unlock()

	cause := ErrNoHost
	if d.notifier != nil {
		cause = d.notifier.Notify()
	}
	if cause != nil {
		// The host may have picked the request up through an earlier
		// wake-up; if so it will run and the caller must wait for it.
		if req.transition(StateQueued, StateFailed) {
			d.clear(req)
			d.logger.Warn("host unavailable", "request_id", req.id, "error", cause)
			return nil, &UnavailableError{Cause: cause}
		}
	}

	d.logger.Debug("request submitted", "request_id", req.id)
	return req, nil
}

// Await blocks until req completes, timeout elapses or ctx is done. A zero
// timeout only checks for a result that is already there; NoTimeout waits
// indefinitely. On timeout the request is marked abandoned but keeps running
// on the host. Await may be called again on an abandoned request.
func (d *Dispatcher[H]) Await(ctx context.Context, req *Request[H], timeout time.Duration) (any, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if o, ok := req.result(); ok {
		return d.unwrap(req, o)
	}

	select {
	case o := <-req.done:
		req.settle(o)
		return d.unwrap(req, o)
	case <-req.settledCh:
		return d.settled(req)
	default:
	}
	if timeout == 0 {
		d.abandon(req, timeout)
		return nil, &TimeoutError{RequestID: req.id, After: timeout}
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case o := <-req.done:
		req.settle(o)
		return d.unwrap(req, o)
	case <-req.settledCh:
		return d.settled(req)
	case <-expired:
		d.abandon(req, timeout)
		return nil, &TimeoutError{RequestID: req.id, After: timeout}
	case <-ctx.Done():
		d.abandon(req, timeout)
		return nil, &TimeoutError{RequestID: req.id, After: timeout, Cause: ctx.Err()}
	}
}

// settled returns the outcome another waiter took from req.done.
func (d *Dispatcher[H]) settled(req *Request[H]) (any, error) {
	o, _ := req.result()
	return d.unwrap(req, o)
}

// Execute submits op and waits for its result.
func (d *Dispatcher[H]) Execute(ctx context.Context, op Operation[H], timeout time.Duration, args ...any) (any, error) {
	req, err := d.Submit(op, args...)
	if err != nil {
		return nil, err
	}
	return d.Await(ctx, req, timeout)
}

// RunPending runs the current request against host. It must only be called
// from the host goroutine. It reports StatusFailed when there is nothing to
// run; the operation's own outcome goes to the waiting caller.
func (d *Dispatcher[H]) RunPending(host H) Status {
	d.mu.Lock()
	req := d.current
	d.mu.Unlock()

	if req == nil || !req.transition(StateQueued, StateRunning) {
		d.logger.Debug("no pending request")
		return StatusFailed
	}

	start := time.Now()
	value, err := d.run(req, host)

	// Clear before completing so a caller woken by the result can submit
	// again straight away.
	d.clear(req)
	req.complete(outcome{value: value, err: err})

	d.logger.Info("request completed",
		"request_id", req.id,
		"ok", err == nil,
		"abandoned", req.Abandoned(),
		"duration", time.Since(start))
	return StatusSucceeded
}

// Pending reports whether a request is current.
func (d *Dispatcher[H]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current != nil
}

func (d *Dispatcher[H]) run(req *Request[H], host H) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("operation panicked: %v", r)
		}
	}()
	return req.op(host, req.args...)
}

func (d *Dispatcher[H]) clear(req *Request[H]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == req {
		d.current = nil
	}
}

func (d *Dispatcher[H]) abandon(req *Request[H], timeout time.Duration) {
	if req.abandoned.CompareAndSwap(false, true) {
		d.logger.Warn("request abandoned", "request_id", req.id, "timeout", timeout, "state", State(req.state.Load()))
	}
}

func (d *Dispatcher[H]) unwrap(req *Request[H], o outcome) (any, error) {
	if o.err != nil {
		return nil, &ExecutionError{RequestID: req.id, Cause: o.err}
	}
	return o.value, nil
}
