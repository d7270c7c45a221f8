package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const (
	defaultLockTTL      = 5 * time.Second
	defaultLockAttempts = 20
	defaultLockBackoff  = 10 * time.Millisecond
	maxLockBackoff      = 250 * time.Millisecond
)

// ErrLockBusy is returned when the lock stays held after every retry.
var ErrLockBusy = errors.New("lock is held by another owner")

type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	DelIfEqual(ctx context.Context, key, value string) (bool, error)
}

// Lock implements a single-owner mutex with SETNX + TTL. A Lock is used for one
// acquire/release cycle.
type Lock struct {
	client   lockStore
	key      string
	ttl      time.Duration
	attempts uint64
	backoff  time.Duration
	owner    string
}

// LockOption tweaks lock retry behaviour.
type LockOption func(*Lock)

// WithLockRetry sets how often and how fast Acquire polls a busy lock.
func WithLockRetry(attempts uint64, backoff time.Duration) LockOption {
	return func(l *Lock) {
		l.attempts = attempts
		l.backoff = backoff
	}
}

// NewLock constructs a Redis-backed lock.
func NewLock(client lockStore, key string, ttl time.Duration, opts ...LockOption) (*Lock, error) {
	if client == nil {
		return nil, errors.New("redis client required for lock")
	}
	if key == "" {
		return nil, errors.New("lock key is required")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	l := &Lock{
		client:   client,
		key:      key,
		ttl:      ttl,
		attempts: defaultLockAttempts,
		backoff:  defaultLockBackoff,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// retryPolicy grows the poll interval exponentially up to maxLockBackoff and
// stops once the lock TTL has elapsed.
func (l *Lock) retryPolicy() retry.Backoff {
	b := retry.NewExponential(l.backoff)
	b = retry.WithCappedDuration(maxLockBackoff, b)
	b = retry.WithMaxDuration(l.ttl, b)
	return retry.WithMaxRetries(l.attempts, b)
}

// Acquire polls until the lock is owned, the retries run out (ErrLockBusy) or
// ctx is done.
func (l *Lock) Acquire(ctx context.Context) error {
	owner := uuid.NewString()
	err := retry.Do(ctx, l.retryPolicy(), func(ctx context.Context) error {
		ok, err := l.client.SetNX(ctx, l.key, owner, l.ttl)
		if err != nil {
			return fmt.Errorf("setnx: %w", err)
		}
		if !ok {
			return retry.RetryableError(ErrLockBusy)
		}
		return nil
	})
	if err != nil {
		return err
	}
	l.owner = owner
	return nil
}

// Release frees the lock only if the owner value still matches.
func (l *Lock) Release(ctx context.Context) error {
	if l.owner == "" {
		return nil
	}
	if _, err := l.client.DelIfEqual(ctx, l.key, l.owner); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	l.owner = ""
	return nil
}
