package resource

import (
	"strings"
	"sync"
	"time"
)

// Group is a keyed registry of controllers sharing one fetch recipe. Keys
// are per user (and per parameter where the resource takes one, e.g.
// "login|monthVal"). Idle entries are evicted on a schedule so departed
// users do not pin memory.
type Group[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	build   func(key string) *Controller[T]
}

type entry[T any] struct {
	controller *Controller[T]
	lastSeen   time.Time
}

func NewGroup[T any](build func(key string) *Controller[T]) *Group[T] {
	return &Group[T]{
		entries: make(map[string]*entry[T]),
		build:   build,
	}
}

// Get returns the controller for key, creating it on first use.
func (g *Group[T]) Get(key string) *Controller[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.entries[key]
	if !ok {
		e = &entry[T]{controller: g.build(key)}
		g.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.controller
}

// Drop removes every controller owned by owner (the key itself, or keys
// parameterized as "owner|param"). Called on logout so a returning user
// starts from idle.
func (g *Group[T]) Drop(owner string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key := range g.entries {
		if ownedBy(key, owner) {
			delete(g.entries, key)
		}
	}
}

// Invalidate marks an owner's controllers stale without removing them.
func (g *Group[T]) Invalidate(owner string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key, e := range g.entries {
		if ownedBy(key, owner) {
			e.controller.Invalidate()
		}
	}
}

func ownedBy(key, owner string) bool {
	return key == owner || strings.HasPrefix(key, owner+"|")
}

// EvictIdle removes entries not read within maxIdle and reports how many.
func (g *Group[T]) EvictIdle(maxIdle time.Duration) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	evicted := 0
	for key, e := range g.entries {
		if e.lastSeen.Before(cutoff) {
			delete(g.entries, key)
			evicted++
		}
	}
	return evicted
}
