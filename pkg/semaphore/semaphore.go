// Package semaphore provides a context-aware counting semaphore used to bound
// concurrent pipeline runs and to serialize calls into shared model clients.
package semaphore

import "context"

// Semaphore implements a simple counting semaphore for limiting concurrency
type Semaphore struct {
	ch chan struct{}
}

// New creates a new semaphore with the given capacity. Capacity below one is
// treated as one.
func New(capacity int) *Semaphore {
	if capacity < 1 {
		capacity = 1
	}
	return &Semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// Acquire acquires a slot, blocking until one is free or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a slot
func (s *Semaphore) Release() {
	<-s.ch
}

// InUse reports how many slots are currently held.
func (s *Semaphore) InUse() int {
	return len(s.ch)
}

// Cap reports the semaphore capacity.
func (s *Semaphore) Cap() int {
	return cap(s.ch)
}
