package service

import (
	"time"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

// CountdownHooks receives countdown signals. Nil hooks are skipped.
type CountdownHooks struct {
	OnTick    func(entities.TimerState)
	OnLowTime func(entities.TimerState)
	OnExpire  func(entities.TimerState)
}

// Countdown is the per-round timer. Remaining time is derived from a deadline
// on the scheduler's clock, never from summed tick intervals.
//
// Callbacks attached through After share the countdown's lifetime and are
// cancelled by Stop and by the next Start.
type Countdown struct {
	sched    clock.Scheduler
	interval time.Duration
	floor    time.Duration
	ratio    float64
	hooks    CountdownHooks

	state    entities.TimerState
	deadline time.Time
	running  bool
	scope    clock.Group
}

// NewCountdown creates a stopped countdown.
func NewCountdown(sched clock.Scheduler, settings GameSettings, hooks CountdownHooks) *Countdown {
	interval := settings.TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}

	return &Countdown{
		sched:    sched,
		interval: interval,
		floor:    settings.LowTimeFloor,
		ratio:    settings.LowTimeRatio,
		hooks:    hooks,
	}
}

// Start resets the timer to d and begins ticking.
func (c *Countdown) Start(d time.Duration) {
	c.Stop()

	c.state = entities.NewTimerState(d)
	c.deadline = c.sched.Now().Add(d)
	c.running = true

	c.scope.Add(c.sched.Every(c.interval, c.tick))
	c.emit(c.hooks.OnTick)
}

// Stop cancels the pending ticks and every attached callback. It is safe to
// call on a stopped countdown.
func (c *Countdown) Stop() {
	c.running = false
	c.scope.Release()
}

// Running reports whether the countdown is ticking.
func (c *Countdown) Running() bool {
	return c.running
}

// After schedules f to run after d unless the countdown is stopped first.
func (c *Countdown) After(d time.Duration, f func()) {
	if !c.running {
		return
	}
	c.scope.Add(c.sched.AfterFunc(d, func() {
		if c.running {
			f()
		}
	}))
}

// State returns the timer state as of now.
func (c *Countdown) State() entities.TimerState {
	if c.running {
		c.state.Remaining = c.remaining()
	}
	return c.state
}

// Apply mutates the running timer with a stress event and publishes a tick so
// the displayed fraction follows the new total at once. Expiry is left to the
// next tick.
func (c *Countdown) Apply(ev entities.StressEvent) entities.TimerState {
	if !c.running {
		return c.state
	}

	now := c.sched.Now()
	c.state.Remaining = c.remainingAt(now)
	c.state = ev.Apply(c.state)
	c.deadline = now.Add(c.state.Remaining)

	c.emit(c.hooks.OnTick)
	return c.state
}

// LowTimeThreshold returns the remaining time at or below which the round is
// considered urgent: max(floor, ratio*total).
func (c *Countdown) LowTimeThreshold() time.Duration {
	return max(c.floor, time.Duration(c.ratio*float64(c.state.Total)))
}

func (c *Countdown) tick() {
	if !c.running {
		return
	}

	c.state.Remaining = c.remaining()

	if !c.state.LowTime && c.state.Remaining <= c.LowTimeThreshold() {
		c.state.LowTime = true
		c.emit(c.hooks.OnLowTime)
	}

	c.emit(c.hooks.OnTick)

	if c.state.Remaining <= 0 {
		c.Stop()
		c.emit(c.hooks.OnExpire)
	}
}

func (c *Countdown) remaining() time.Duration {
	return c.remainingAt(c.sched.Now())
}

func (c *Countdown) remainingAt(now time.Time) time.Duration {
	return max(0, c.deadline.Sub(now))
}

func (c *Countdown) emit(hook func(entities.TimerState)) {
	if hook != nil {
		hook(c.state)
	}
}
