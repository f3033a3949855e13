package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"schoolapp-backend-go/internal/legacy"
)

func TestControllerSuccessFlow(t *testing.T) {
	ctrl := NewController(func(ctx context.Context) (string, error) {
		return "hello", nil
	})
	if got := ctrl.Snapshot().Status; got != StatusIdle {
		t.Fatalf("initial status = %s, want idle", got)
	}
	snap := ctrl.RefreshWait(context.Background())
	if snap.Status != StatusSuccess || snap.Data != "hello" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestControllerErrorCarriesTaxonomy(t *testing.T) {
	ctrl := NewController(func(ctx context.Context) (string, error) {
		return "", legacy.ErrHTMLErrorPage()
	})
	snap := ctrl.RefreshWait(context.Background())
	if snap.Status != StatusError {
		t.Fatalf("status = %s, want error", snap.Status)
	}
	if snap.ErrorKind != legacy.FailHTMLErrorPage {
		t.Fatalf("kind = %s", snap.ErrorKind)
	}
	if snap.ErrorMessage == "" {
		t.Fatalf("error snapshot must carry a message")
	}
}

func TestControllerErrorPersistsUntilRetry(t *testing.T) {
	calls := 0
	ctrl := NewController(func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("boom")
		}
		return calls, nil
	})
	if snap := ctrl.RefreshWait(context.Background()); snap.Status != StatusError {
		t.Fatalf("first load should fail")
	}
	// A plain read does not leave the error state.
	if snap := ctrl.EnsureWait(context.Background()); snap.Status != StatusError {
		t.Fatalf("EnsureWait must not retry a failed load, got %s", snap.Status)
	}
	if calls != 1 {
		t.Fatalf("EnsureWait triggered a fetch, calls = %d", calls)
	}
	// An explicit retry does.
	if snap := ctrl.RefreshWait(context.Background()); snap.Status != StatusSuccess {
		t.Fatalf("retry should succeed, got %s", snap.Status)
	}
}

func TestControllerLastTriggerWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	ctrl := NewController(func(ctx context.Context) (int, error) {
		n := int(atomic.AddInt32(&calls, 1))
		if n == 1 {
			close(started)
			<-release
		}
		return n, nil
	})

	// Trigger A blocks mid-fetch; trigger B starts after and finishes
	// first. A's late resolution must be discarded.
	ctrl.Refresh(context.Background())
	<-started
	snap := ctrl.RefreshWait(context.Background())
	if snap.Status != StatusSuccess || snap.Data != 2 {
		t.Fatalf("snapshot after B = %+v, want data 2", snap)
	}

	// Unblock A and give it time to (wrongly) publish.
	close(release)
	time.Sleep(20 * time.Millisecond)
	if snap = ctrl.Snapshot(); snap.Data != 2 {
		t.Fatalf("stale trigger overwrote snapshot: %+v", snap)
	}
}

func TestControllerInvalidate(t *testing.T) {
	ctrl := NewController(func(ctx context.Context) (string, error) {
		return "x", nil
	})
	ctrl.RefreshWait(context.Background())
	ctrl.Invalidate()
	if got := ctrl.Snapshot().Status; got != StatusIdle {
		t.Fatalf("status after invalidate = %s, want idle", got)
	}
	// The next read reloads.
	if snap := ctrl.EnsureWait(context.Background()); snap.Status != StatusSuccess {
		t.Fatalf("reload after invalidate failed: %+v", snap)
	}
}

func TestGroupEviction(t *testing.T) {
	built := 0
	group := NewGroup(func(key string) *Controller[string] {
		built++
		return NewController(func(ctx context.Context) (string, error) { return key, nil })
	})
	group.Get("u1")
	group.Get("u1")
	if built != 1 {
		t.Fatalf("Get must reuse controllers, built = %d", built)
	}
	if evicted := group.EvictIdle(time.Hour); evicted != 0 {
		t.Fatalf("fresh entry evicted")
	}
	if evicted := group.EvictIdle(0); evicted != 1 {
		t.Fatalf("expected eviction, got %d", evicted)
	}
	group.Get("u1")
	if built != 2 {
		t.Fatalf("evicted controller should be rebuilt")
	}
}

func TestGroupDropByPrefix(t *testing.T) {
	group := NewGroup(func(key string) *Controller[string] {
		return NewController(func(ctx context.Context) (string, error) { return key, nil })
	})
	a := group.Get("u1|2025-01")
	a.RefreshWait(context.Background())
	group.Get("u2|2025-01")
	group.Drop("u1")
	if got := group.Get("u1|2025-01").Snapshot().Status; got != StatusIdle {
		t.Fatalf("dropped controller should start from idle, got %s", got)
	}
}
