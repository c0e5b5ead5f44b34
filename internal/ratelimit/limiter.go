package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

var (
	// ErrInvalidCount is returned for a token count that can never be
	// satisfied: zero, negative or larger than the capacity.
	ErrInvalidCount = errors.New("invalid token count")

	// ErrInvalidConfig is returned by New for a non-positive capacity or
	// interval.
	ErrInvalidConfig = errors.New("invalid limiter config")
)

// Default values match the public Bluesky rate limits for authenticated
// write-heavy clients.
const (
	DefaultCapacity = 3000
	DefaultInterval = 300 * time.Second
)

// Option customizes a Limiter.
type Option func(*Limiter)

// WithClock replaces the wall clock. Tests pass clock.NewMock().
func WithClock(c clock.Clock) Option {
	return func(l *Limiter) {
		if c != nil {
			l.clock = c
		}
	}
}

// Limiter is a token bucket with continuous, proportional refill.
//
// The balance is kept in token·nanosecond units: one token costs
// interval.Nanoseconds() units and every elapsed nanosecond adds capacity
// units. This keeps refill integer-exact for any capacity/interval pair.
type Limiter struct {
	capacity int64
	interval time.Duration
	clock    clock.Clock

	mu      sync.Mutex
	balance int64
	last    time.Time
	waiting int
}

// New returns a full Limiter holding capacity tokens that refills from
// empty to full over interval.
func New(capacity int, interval time.Duration, opts ...Option) (*Limiter, error) {
	if capacity <= 0 || interval <= 0 {
		return nil, fmt.Errorf("%w: capacity=%d interval=%s", ErrInvalidConfig, capacity, interval)
	}
	if int64(capacity) > math.MaxInt64/2/interval.Nanoseconds() {
		return nil, fmt.Errorf("%w: capacity %d too large for interval %s", ErrInvalidConfig, capacity, interval)
	}

	l := &Limiter{
		capacity: int64(capacity),
		interval: interval,
		clock:    clock.New(),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.balance = l.max()
	l.last = l.clock.Now()
	return l, nil
}

// Capacity returns the maximum number of tokens.
func (l *Limiter) Capacity() int { return int(l.capacity) }

// Interval returns the time needed to refill from empty to full.
func (l *Limiter) Interval() time.Duration { return l.interval }

// Acquire takes n tokens, suspending the caller until they are available.
//
// Cancelling ctx abandons the wait; nothing is consumed in that case.
// A count outside 1..capacity fails immediately with ErrInvalidCount.
func (l *Limiter) Acquire(ctx context.Context, n int) error {
	if n <= 0 || int64(n) > l.capacity {
		return fmt.Errorf("%w: %d (capacity %d)", ErrInvalidCount, n, l.capacity)
	}
	cost := int64(n) * l.unit()

	for {
		l.mu.Lock()
		l.refill()
		if l.balance >= cost {
			l.balance -= cost
			l.mu.Unlock()
			return nil
		}

		deficit := cost - l.balance
		wait := time.Duration((deficit + l.capacity - 1) / l.capacity)
		// The timer is registered before the waiter becomes visible
		// through Waiting.
		timer := l.clock.After(wait)
		l.waiting++
		l.mu.Unlock()

		var err error
		select {
		case <-timer:
		case <-ctx.Done():
			err = ctx.Err()
		}

		l.mu.Lock()
		l.waiting--
		l.mu.Unlock()

		if err != nil {
			return err
		}
	}
}

// Available returns the number of whole tokens that could be taken right
// now without waiting.
func (l *Limiter) Available() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	return int(l.balance / l.unit())
}

// Waiting returns the number of callers currently suspended in Acquire.
func (l *Limiter) Waiting() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.waiting
}

func (l *Limiter) unit() int64 { return l.interval.Nanoseconds() }

func (l *Limiter) max() int64 { return l.capacity * l.unit() }

// refill must be called with mu held.
func (l *Limiter) refill() {
	now := l.clock.Now()
	elapsed := now.Sub(l.last)
	if elapsed <= 0 {
		return
	}
	l.last = now

	if elapsed > l.interval {
		elapsed = l.interval
	}
	l.balance += elapsed.Nanoseconds() * l.capacity
	if l.balance > l.max() {
		l.balance = l.max()
	}
}
