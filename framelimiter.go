package tilewalk

import (
	"fmt"
	"time"
)

// Clock abstracts wall time and sleeping so pacing can be tested without real
// delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the real monotonic clock.
type SystemClock struct{}

// Now returns the current time with a monotonic reading.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep pauses the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// FrameLimiter keeps the measured frame rate near a target by self-tuning a
// per-frame delay budget. It never waits for a full frame: when the next tick
// is not due yet it sleeps half the budget, which avoids overshoot from coarse
// timer granularity.
type FrameLimiter struct {
	clock Clock
	limit int

	budget float64 // milliseconds per frame

	fps    int // last whole-second measurement
	cur    int // frames counted in the window in progress
	newFPS bool

	nextSecond time.Time
	nextFrame  time.Time
}

// NewFrameLimiter creates a limiter targeting limit frames per second. Limits
// above HardFPSLimit are lowered to it, since measurements never exceed it. A
// nil clock selects SystemClock.
func NewFrameLimiter(limit int, clock Clock) (*FrameLimiter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("frame limiter %d: %w", limit, ErrInvalidFPSLimit)
	}
	limit = min(limit, HardFPSLimit)
	if clock == nil {
		clock = SystemClock{}
	}
	l := &FrameLimiter{
		clock:  clock,
		limit:  limit,
		budget: 1.0 / float64(limit) * 1000 * FPSInitFactor,
		fps:    HardFPSLimit,
		newFPS: true,
	}
	now := clock.Now()
	l.nextSecond = now.Add(time.Second)
	l.nextFrame = now.Add(msToDuration(l.budget))
	return l, nil
}

// SleepTillNext counts a frame, retunes the budget against the last
// measurement, sleeps when the next tick is not yet due and rolls the
// one-second window.
func (l *FrameLimiter) SleepTillNext() {
	l.cur++

	switch {
	case l.fps > l.limit:
		if l.fps-l.limit > 5 {
			l.budget += .0025
		} else {
			l.budget += .00005
		}
	case l.fps < l.limit:
		if l.limit-l.fps > 5 {
			l.budget -= .001
		} else {
			l.budget -= .000025
		}
	}

	if l.clock.Now().Before(l.nextFrame) && l.budget > 0 {
		l.clock.Sleep(msToDuration(l.budget / 2))
	}

	now := l.clock.Now()
	if now.After(l.nextSecond) {
		l.newFPS = true
		l.fps = l.cur
		l.cur = 0
		l.nextSecond = now.Add(time.Second)
	}

	l.nextFrame = now.Add(msToDuration(l.budget))
}

// FPS returns the last whole-second measurement, clamped to HardFPSLimit, and
// clears the new-measurement flag.
func (l *FrameLimiter) FPS() int {
	l.newFPS = false
	return min(l.fps, HardFPSLimit)
}

// NewFPS reports whether a measurement arrived since the last FPS call.
func (l *FrameLimiter) NewFPS() bool { return l.newFPS }

// Limit returns the target frame rate.
func (l *FrameLimiter) Limit() int { return l.limit }

// Budget returns the current per-frame budget in milliseconds.
func (l *FrameLimiter) Budget() float64 { return l.budget }

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
