// Package scheduler provides the wall-clock implementation of the
// ports.Scheduler contract.
package scheduler

import (
	"sync"
	"time"

	"github.com/dvidx/tempo/internal/ports"
)

// Wall arms real timers against the wall clock. One phase-end wake slot and
// one periodic tick slot exist; re-arming either slot cancels its
// predecessor. A generation counter guards against a timer that fired just
// as it was cancelled: its callback observes a stale generation and is
// dropped, so CancelAll is authoritative the moment it returns.
type Wall struct {
	mu     sync.Mutex
	onWake ports.WakeFunc
	onTick ports.WakeFunc
	wake   *time.Timer
	ticker *time.Ticker
	stop   chan struct{}
	gen    uint64
}

// Ensure Wall implements ports.Scheduler.
var _ ports.Scheduler = (*Wall)(nil)

// NewWall creates an unarmed scheduler.
func NewWall() *Wall {
	return &Wall{}
}

// SetHandlers registers the wake and tick callbacks.
func (w *Wall) SetHandlers(onWake, onTick ports.WakeFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onWake = onWake
	w.onTick = onTick
}

// Arm schedules the phase-end wake and, when tickEvery > 0, the repeating
// tick. Prior registrations are cancelled first. Wakes scheduled in the past
// fire almost immediately; lateness is reported through the now argument.
func (w *Wall) Arm(wakeAt time.Time, tickEvery time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cancelLocked()
	gen := w.gen

	delay := time.Until(wakeAt)
	if delay < 0 {
		delay = 0
	}
	w.wake = time.AfterFunc(delay, func() {
		w.fireWake(gen)
	})

	if tickEvery > 0 {
		ticker := time.NewTicker(tickEvery)
		stop := make(chan struct{})
		w.ticker = ticker
		w.stop = stop
		go w.tickLoop(ticker, stop, gen)
	}
}

// CancelAll removes every pending registration.
func (w *Wall) CancelAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelLocked()
}

func (w *Wall) cancelLocked() {
	w.gen++
	if w.wake != nil {
		w.wake.Stop()
		w.wake = nil
	}
	if w.ticker != nil {
		w.ticker.Stop()
		close(w.stop)
		w.ticker = nil
		w.stop = nil
	}
}

func (w *Wall) fireWake(gen uint64) {
	w.mu.Lock()
	if gen != w.gen || w.onWake == nil {
		w.mu.Unlock()
		return
	}
	handler := w.onWake
	w.wake = nil
	w.mu.Unlock()

	handler(time.Now())
}

func (w *Wall) tickLoop(ticker *time.Ticker, stop chan struct{}, gen uint64) {
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			w.mu.Lock()
			stale := gen != w.gen
			handler := w.onTick
			w.mu.Unlock()
			if stale {
				return
			}
			if handler != nil {
				handler(now)
			}
		}
	}
}
