package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](16, time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[int](16, time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (int, error) {
		calls.Add(1)
		return 7, nil
	}

	for i := 0; i < 2; i++ {
		if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
			t.Fatalf("GetOrLoad #%d error: %v", i, err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](16, time.Minute)
	boom := errors.New("boom")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		return 0, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("failed load must not populate the cache")
	}

	if _, err := store.GetOrLoad(context.Background(), "k", nil); !errors.Is(err, ErrNilLoader) {
		t.Fatalf("expected ErrNilLoader, got %v", err)
	}
}

func TestStore_ExpiresAndEvicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	short := NewStore[string](16, 10*time.Millisecond)
	short.Set(ctx, "k", "v")
	time.Sleep(30 * time.Millisecond)
	if _, ok := short.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}

	small := NewStore[string](2, time.Minute)
	small.Set(ctx, "a", "1")
	small.Set(ctx, "b", "2")
	small.Set(ctx, "c", "3")
	if _, ok := small.Get(ctx, "a"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if small.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", small.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore[string](16, time.Minute)
	store.Set(ctx, "rows:2025-26:", "a")
	store.Set(ctx, "rows:2025-26:Boston Celtics", "b")
	store.Set(ctx, "periods", "c")

	store.DeletePrefix(ctx, "rows:")
	if store.Len() != 1 {
		t.Fatalf("expected only unrelated key to survive, got %d entries", store.Len())
	}
	if _, ok := store.Get(ctx, "periods"); !ok {
		t.Fatalf("expected periods key to survive")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
