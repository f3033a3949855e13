// Package resource implements per-user remote data controllers. Each
// controller owns one upstream resource and moves through idle, loading,
// success and error states; concurrent triggers are resolved last-wins.
package resource

import (
	"context"
	"sync"
	"time"

	"schoolapp-backend-go/internal/legacy"
)

// Status is a controller's lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is an immutable view of a controller at a point in time. Data is
// only set in success state; ErrorKind/ErrorMessage only in error state.
type Snapshot[T any] struct {
	Status       Status             `json:"status"`
	Data         T                  `json:"data,omitempty"`
	ErrorKind    legacy.FailureKind `json:"-"`
	ErrorMessage string             `json:"-"`
	FetchedAt    time.Time          `json:"-"`
}

// FetchFunc loads the resource. It must return either a value or an error,
// and should not mutate the value after returning it.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Controller serializes state transitions for one remote resource. Every
// trigger gets a sequence number; a fetch that finishes after a newer trigger
// started is discarded without touching the snapshot.
type Controller[T any] struct {
	mu    sync.Mutex
	seq   uint64
	snap  Snapshot[T]
	fetch FetchFunc[T]
}

func NewController[T any](fetch FetchFunc[T]) *Controller[T] {
	return &Controller[T]{
		snap:  Snapshot[T]{Status: StatusIdle},
		fetch: fetch,
	}
}

// Snapshot returns the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Refresh triggers a load in the background and returns immediately.
func (c *Controller[T]) Refresh(ctx context.Context) {
	seq := c.begin()
	go c.run(ctx, seq)
}

// RefreshWait triggers a load and blocks until this trigger resolves (or is
// superseded), returning the snapshot as of that moment. Handlers use this
// so a first read does not answer with a transient loading state.
func (c *Controller[T]) RefreshWait(ctx context.Context) Snapshot[T] {
	seq := c.begin()
	c.run(ctx, seq)
	return c.Snapshot()
}

// EnsureWait loads only when the controller has no published result yet.
func (c *Controller[T]) EnsureWait(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	status := c.snap.Status
	c.mu.Unlock()
	if status == StatusSuccess || status == StatusError {
		return c.Snapshot()
	}
	return c.RefreshWait(ctx)
}

// Invalidate drops the published result so the next read refetches. Used
// when an external event (a payment, a session change) makes cached data
// suspect.
func (c *Controller[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.snap = Snapshot[T]{Status: StatusIdle}
}

func (c *Controller[T]) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.snap = Snapshot[T]{Status: StatusLoading}
	return c.seq
}

func (c *Controller[T]) run(ctx context.Context, seq uint64) {
	data, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// A newer trigger owns the snapshot now.
		return
	}
	if err != nil {
		c.snap = Snapshot[T]{
			Status:       StatusError,
			ErrorKind:    legacy.KindOf(err),
			ErrorMessage: err.Error(),
			FetchedAt:    time.Now(),
		}
		return
	}
	c.snap = Snapshot[T]{Status: StatusSuccess, Data: data, FetchedAt: time.Now()}
}
