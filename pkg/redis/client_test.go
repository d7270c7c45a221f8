package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/cartview/pkg/config"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	if err := client.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := client.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("unexpected get result %q err=%v", got, err)
	}
	if err := client.Del(ctx, "k"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, "k"); !IsNil(err) {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected ping on empty client to fail")
	}
	if _, err := client.SetNX(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected setnx on empty client to fail")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on empty client should be a no-op, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("scope", "id"); got != "cv:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.CartKey("default"); got != "cv:cart:default" {
		t.Fatalf("unexpected cart key %s", got)
	}
	if got := client.CartLockKey(" default "); got != "cv:lock:cart:default" {
		t.Fatalf("unexpected lock key %s", got)
	}
	if got := client.IdempotencyKey("", "id"); got != "cv:idempotency:id" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected missing endpoint to fail")
	}

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/3", PoolSize: 7, DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DB != 3 || opts.PoolSize != 7 || opts.DialTimeout != time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379", DB: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.DB != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestLockAcquireRelease(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	first, err := NewLock(client, client.CartLockKey("default"), time.Second, WithLockRetry(2, time.Millisecond))
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	if err := first.Acquire(ctx); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	second, _ := NewLock(client, client.CartLockKey("default"), time.Second, WithLockRetry(2, time.Millisecond))
	if err := second.Acquire(ctx); !errors.Is(err, ErrLockBusy) {
		t.Fatalf("expected busy lock, got %v", err)
	}
	if err := second.Release(ctx); err != nil {
		t.Fatalf("releasing an unowned lock should be a no-op: %v", err)
	}

	if err := first.Release(ctx); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := second.Acquire(ctx); err != nil {
		t.Fatalf("expected lock to be free after release: %v", err)
	}
}

func TestLockReleaseKeepsForeignOwner(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	key := client.CartLockKey("default")

	lock, _ := NewLock(client, key, time.Second, WithLockRetry(2, time.Millisecond))
	if err := lock.Acquire(ctx); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	// TTL lapsed and another writer took the lock.
	if err := client.Set(ctx, key, "other-owner", time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	owner, err := client.Get(ctx, key)
	if err != nil || owner != "other-owner" {
		t.Fatalf("expected foreign owner to keep the lock, got %q err=%v", owner, err)
	}
}

func TestDelIfEqual(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	_ = client.Set(ctx, "k", "v1", 0)

	if deleted, err := client.DelIfEqual(ctx, "k", "v2"); err != nil || deleted {
		t.Fatalf("mismatched value must not delete: deleted=%v err=%v", deleted, err)
	}
	if deleted, err := client.DelIfEqual(ctx, "k", "v1"); err != nil || !deleted {
		t.Fatalf("matching value must delete: deleted=%v err=%v", deleted, err)
	}
	if _, err := (&Client{}).DelIfEqual(ctx, "k", "v1"); !errors.Is(err, errNotInitialized) {
		t.Fatalf("expected not initialized error, got %v", err)
	}
}

func TestLockRetryPolicyIsCapped(t *testing.T) {
	lock, _ := NewLock(&Client{store: newMockCmdable()}, "k", time.Minute)
	policy := lock.retryPolicy()

	var total time.Duration
	steps := 0
	for {
		next, stop := policy.Next()
		if stop {
			break
		}
		if next > maxLockBackoff {
			t.Fatalf("step %d waits %s, above cap %s", steps, next, maxLockBackoff)
		}
		total += next
		steps++
	}
	if steps != defaultLockAttempts {
		t.Fatalf("expected %d retries, got %d", defaultLockAttempts, steps)
	}
	if total > defaultLockAttempts*maxLockBackoff {
		t.Fatalf("total wait %s exceeds bound", total)
	}
}

func TestNewLockValidation(t *testing.T) {
	if _, err := NewLock(nil, "k", time.Second); err == nil {
		t.Fatal("expected nil client to fail")
	}
	if _, err := NewLock(&Client{store: newMockCmdable()}, "", time.Second); err == nil {
		t.Fatal("expected empty key to fail")
	}
}

type mockCmdable struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if script != delIfEqualScript || len(keys) != 1 || len(args) != 1 {
		return redis.NewCmdResult(nil, fmt.Errorf("unexpected script call"))
	}
	if current, ok := m.data[keys[0]]; !ok || current != fmt.Sprint(args[0]) {
		return redis.NewCmdResult(int64(0), nil)
	}
	delete(m.data, keys[0])
	return redis.NewCmdResult(int64(1), nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
