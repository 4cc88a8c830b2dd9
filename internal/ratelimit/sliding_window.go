// Package ratelimit holds the per-client limiter guarding the credential
// endpoints.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultLimit  = 20
	DefaultWindow = 15 * time.Minute
)

type counter struct {
	windowStart time.Time
	current     int
	previous    int
}

// SlidingWindow approximates a rolling window by weighting the previous
// fixed window's count by how much of it still overlaps the rolling one.
// It satisfies echo's middleware.RateLimiterStore.
type SlidingWindow struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	now       func() time.Time
	counters  map[string]*counter
	lastSweep time.Time
}

type Option func(*SlidingWindow)

func WithClock(now func() time.Time) Option {
	return func(s *SlidingWindow) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSlidingWindow(limit int, window time.Duration, opts ...Option) *SlidingWindow {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	s := &SlidingWindow{
		limit:    limit,
		window:   window,
		now:      time.Now,
		counters: make(map[string]*counter),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.now()
	return s
}

// Allow records one attempt for identifier and reports whether it fits
// within the limit. Rejected attempts are not counted.
func (s *SlidingWindow) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	c, ok := s.counters[identifier]
	if !ok {
		c = &counter{windowStart: now.Truncate(s.window)}
		s.counters[identifier] = c
	}
	s.roll(c, now)

	elapsed := now.Sub(c.windowStart)
	weight := float64(s.window-elapsed) / float64(s.window)
	estimate := float64(c.previous)*weight + float64(c.current)
	if estimate+1 > float64(s.limit) {
		return false, nil
	}
	c.current++
	return true, nil
}

// Remaining reports how many more attempts identifier may make right now.
func (s *SlidingWindow) Remaining(identifier string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[identifier]
	if !ok {
		return s.limit
	}
	now := s.now()
	s.roll(c, now)
	weight := float64(s.window-now.Sub(c.windowStart)) / float64(s.window)
	left := s.limit - int(float64(c.previous)*weight+float64(c.current)+0.999999)
	if left < 0 {
		return 0
	}
	return left
}

func (s *SlidingWindow) Limit() int {
	return s.limit
}

func (s *SlidingWindow) Window() time.Duration {
	return s.window
}

func (s *SlidingWindow) roll(c *counter, now time.Time) {
	start := now.Truncate(s.window)
	switch {
	case start.Equal(c.windowStart):
	case start.Sub(c.windowStart) == s.window:
		c.previous = c.current
		c.current = 0
		c.windowStart = start
	default:
		c.previous = 0
		c.current = 0
		c.windowStart = start
	}
}

// sweep drops identifiers idle for two windows. Runs at most once per window.
func (s *SlidingWindow) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.window {
		return
	}
	s.lastSweep = now
	cutoff := now.Truncate(s.window).Add(-s.window)
	for key, c := range s.counters {
		if c.windowStart.Before(cutoff) {
			delete(s.counters, key)
		}
	}
}

func (s *SlidingWindow) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}
