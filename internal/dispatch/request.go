package dispatch

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a Request.
type State int32

const (
	StateCreated State = iota
	StateQueued
	StateRunning
	StateSucceeded
	StateFailed
	StateAbandoned
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateQueued:
		return "queued"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// Operation is work executed on the host goroutine.
type Operation[H any] func(host H, args ...any) (any, error)

type outcome struct {
	value any
	err   error
}

// Request is one submitted unit of work.
type Request[H any] struct {
	id        string
	op        Operation[H]
	args      []any
	submitted time.Time

	// done holds at most one outcome, ever.
	done chan outcome

	state     atomic.Int32
	abandoned atomic.Bool
	completed atomic.Bool

	// settledCh is closed once an outcome has been taken from done, so
	// every other waiter wakes up too.
	settledCh chan struct{}

	mu       sync.Mutex
	settled  bool
	received outcome
}

func newRequest[H any](op Operation[H], args []any) *Request[H] {
	return &Request[H]{
		id:        uuid.NewString(),
		op:        op,
		args:      args,
		submitted: time.Now(),
		done:      make(chan outcome, 1),
		settledCh: make(chan struct{}),
	}
}

func (r *Request[H]) ID() string {
	return r.id
}

// State returns StateAbandoned once the caller has stopped waiting, and the
// execution state otherwise.
func (r *Request[H]) State() State {
	if r.abandoned.Load() {
		return StateAbandoned
	}
	return State(r.state.Load())
}

// Abandoned reports whether a wait on this request timed out.
func (r *Request[H]) Abandoned() bool {
	return r.abandoned.Load()
}

func (r *Request[H]) transition(from, to State) bool {
	return r.state.CompareAndSwap(int32(from), int32(to))
}

// complete publishes the outcome. A request completes exactly once; a
// second completion is a programming error.
func (r *Request[H]) complete(o outcome) {
	if !r.completed.CompareAndSwap(false, true) {
		panic("dispatch: request " + r.id + " completed twice")
	}
	if o.err != nil {
		r.state.Store(int32(StateFailed))
	} else {
		r.state.Store(int32(StateSucceeded))
	}

	r.done <- o
}

// settle records an outcome taken from done so later waits can return it.
func (r *Request[H]) settle(o outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settled {
		return
	}
	r.settled = true
	r.received = o
	close(r.settledCh)
}

func (r *Request[H]) result() (outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.received, r.settled
}
