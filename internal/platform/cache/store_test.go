package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "player:mrr-fwd-04", nil
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
			v, err := store.GetOrLoad(context.Background(), "players:list:GK", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "player:mrr-fwd-04" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "league:lg-1", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "leagues:lg-1", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "leagues:lg-1", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_DeletePrefixDropsMatchingKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "players:list:GK", []string{"mrr-gk-01"})
	store.Set(ctx, "players:id:mrr-fwd-04", "Kaushal Niraula")
	store.Set(ctx, "leagues:lg-1", "Office League")

	store.DeletePrefix(ctx, "players:")

	if _, ok := store.Get(ctx, "players:list:GK"); ok {
		t.Fatal("expected players list entry dropped")
	}
	if _, ok := store.Get(ctx, "players:id:mrr-fwd-04"); ok {
		t.Fatal("expected players id entry dropped")
	}
	if _, ok := store.Get(ctx, "leagues:lg-1"); !ok {
		t.Fatal("expected league entry kept")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
