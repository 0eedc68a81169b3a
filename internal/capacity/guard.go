// Package capacity serializes registration attempts per workshop so the
// seat count read and the insert that follows it happen as one step.
package capacity

import (
	"context"
	"sync"
)

// Guard runs fn while holding an exclusive lock for the workshop.
type Guard interface {
	Do(ctx context.Context, workshopID int, fn func(ctx context.Context) error) error
}

// LocalGuard locks within a single process.
type LocalGuard struct {
	mu    sync.Mutex
	locks map[int]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocalGuard returns an in-process guard.
func NewLocalGuard() *LocalGuard {
	return &LocalGuard{locks: make(map[int]*slot)}
}

// Do blocks until the workshop lock is free or ctx is done.
func (g *LocalGuard) Do(ctx context.Context, workshopID int, fn func(ctx context.Context) error) error {
	s := g.acquireSlot(workshopID)
	defer g.releaseSlot(workshopID, s)

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.ch }()

	return fn(ctx)
}

func (g *LocalGuard) acquireSlot(workshopID int) *slot {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.locks[workshopID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		g.locks[workshopID] = s
	}
	s.refs++
	return s
}

func (g *LocalGuard) releaseSlot(workshopID int, s *slot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(g.locks, workshopID)
	}
}

// held reports how many workshops currently have waiters or holders.
func (g *LocalGuard) held() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.locks)
}
