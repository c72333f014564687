package session

import (
	"log/slog"
	"sync"
	"time"
)

// Clock supplies the current time for message and token timestamps.
type Clock interface {
	Now() time.Time
}

// TimerHandle cancels a pending callback. Stop is idempotent and reports
// whether it prevented the callback from firing.
type TimerHandle interface {
	Stop() bool
}

// Scheduler schedules a callback to run once after the given delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) TimerHandle
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) TimerHandle {
	return time.AfterFunc(d, fn)
}

// SystemScheduler returns a Scheduler backed by time.AfterFunc.
func SystemScheduler() Scheduler { return systemScheduler{} }

// CancelFunc stops a running simulator. Safe to call more than once, and
// safe to call after the last tick already fired.
type CancelFunc func()

// ticker re-arms fn on a fixed interval until stopped. A callback that races
// Stop observes the stopped flag and does nothing. A panicking callback is
// logged and does not break the loop.
type ticker struct {
	sched    Scheduler
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	stopped bool
	timer   TimerHandle
}

func startTicker(sched Scheduler, interval time.Duration, fn func()) *ticker {
	t := &ticker{sched: sched, interval: interval, fn: fn}
	t.mu.Lock()
	t.timer = sched.AfterFunc(interval, t.tick)
	t.mu.Unlock()
	return t
}

func (t *ticker) tick() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	t.run()

	t.mu.Lock()
	if !t.stopped {
		t.timer = t.sched.AfterFunc(t.interval, t.tick)
	}
	t.mu.Unlock()
}

func (t *ticker) run() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("timer callback panicked", "panic", r)
		}
	}()
	t.fn()
}

// Stop cancels all future ticks. Idempotent.
func (t *ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
}
