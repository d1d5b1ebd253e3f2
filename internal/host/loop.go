package host

import (
	"log/slog"
	"sync"
)

// Loop is a headless host event loop. It owns a Host and runs callbacks on a
// single goroutine whenever it is notified.
type Loop struct {
	host   Host
	logger *slog.Logger

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewLoop creates a loop for h. Call Start before Notify.
func NewLoop(h Host, opts ...Option) *Loop {
	o := buildOptions("host-loop", opts)
	return &Loop{
		host:   h,
		logger: o.logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Start launches the loop goroutine. Every wake-up calls run with the host.
// Start may be called once.
func (l *Loop) Start(run func(Host)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.stopped {
		return
	}
	l.started = true

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-l.done:
				return
			case <-l.wake:
				run(l.host)
			}
		}
	}()
}

// Notify wakes the loop. It never blocks; wake-ups that arrive while one is
// already pending are coalesced.
func (l *Loop) Notify() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.stopped:
		return ErrHostStopped
	case !l.started:
		return ErrHostNotStarted
	}

	select {
	case l.wake <- struct{}{}:
	default:
		l.logger.Debug("wake-up coalesced")
	}
	return nil
}

// Stop ends the loop and waits for an in-progress callback to return.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	close(l.done)
	l.mu.Unlock()

	l.wg.Wait()
}
