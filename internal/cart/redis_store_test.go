package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/angelmondragon/cartview/pkg/errors"
	pkgredis "github.com/angelmondragon/cartview/pkg/redis"
)

type fakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	setErr  error
	pingErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value.(string)
	return nil
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = value.(string)
	return true, nil
}

func (f *fakeRedis) DelIfEqual(_ context.Context, key, value string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if current, ok := f.data[key]; !ok || current != value {
		return false, nil
	}
	delete(f.data, key)
	return true, nil
}

func (f *fakeRedis) Ping(context.Context) error { return f.pingErr }

func (f *fakeRedis) CartKey(name string) string { return "cv:cart:" + name }

func (f *fakeRedis) CartLockKey(name string) string { return "cv:lock:cart:" + name }

func (f *fakeRedis) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store, err := NewRedisStore(client, "default", time.Second)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	empty, err := store.Snapshot(ctx)
	if err != nil || !empty.IsEmpty() {
		t.Fatalf("expected empty cart for missing key, got %+v err=%v", empty.Entries(), err)
	}

	if err := store.Dispatch(ctx, AddItem("Apple", dec(t, "1.005"), "")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := store.Dispatch(ctx, UpdateQuantity("Apple", 3)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	state, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	entry, ok := state.Find("Apple")
	if !ok || entry.Quantity != 3 || !entry.Price.Equal(dec(t, "1.005")) {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if LineTotal(entry).StringFixed(2) != "3.02" {
		t.Fatalf("expected line total 3.02, got %s", LineTotal(entry).StringFixed(2))
	}
	if client.has("cv:lock:cart:default") {
		t.Fatalf("lock must be released after dispatch")
	}
}

func TestRedisStoreBusyLockIsConflict(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	client.data["cv:lock:cart:default"] = "someone-else"

	store, _ := NewRedisStore(client, "default", time.Second, pkgredis.WithLockRetry(2, time.Millisecond))
	err := store.Dispatch(ctx, AddItem("Apple", dec(t, "1"), ""))
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if client.data["cv:lock:cart:default"] != "someone-else" {
		t.Fatalf("foreign lock must stay in place")
	}
}

func TestRedisStoreWriteFailureReleasesLock(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	client.setErr = errors.New("boom")

	store, _ := NewRedisStore(client, "default", time.Second)
	err := store.Dispatch(ctx, AddItem("Apple", dec(t, "1"), ""))
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if client.has("cv:lock:cart:default") {
		t.Fatalf("lock must be released after failure")
	}
}

func TestRedisStoreValidation(t *testing.T) {
	if _, err := NewRedisStore(nil, "default", time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}
	if _, err := NewRedisStore(newFakeRedis(), "", time.Second); err == nil {
		t.Fatalf("expected error for blank cart name")
	}
}
