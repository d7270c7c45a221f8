package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/angelmondragon/cartview/pkg/errors"
	pkgredis "github.com/angelmondragon/cartview/pkg/redis"
)

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	DelIfEqual(ctx context.Context, key, value string) (bool, error)
	Ping(ctx context.Context) error
	CartKey(name string) string
	CartLockKey(name string) string
}

// RedisStore keeps the cart snapshot as JSON under one key. Writers serialise on
// a SETNX lock so each Dispatch is a read-apply-write cycle nobody interleaves with.
type RedisStore struct {
	client  redisKV
	cart    string
	lockTTL time.Duration
	lockOps []pkgredis.LockOption
}

// NewRedisStore binds a store to the named cart.
func NewRedisStore(client redisKV, cartName string, lockTTL time.Duration, lockOpts ...pkgredis.LockOption) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if cartName == "" {
		return nil, fmt.Errorf("cart name required")
	}
	return &RedisStore{client: client, cart: cartName, lockTTL: lockTTL, lockOps: lockOpts}, nil
}

func (s *RedisStore) Snapshot(ctx context.Context) (State, error) {
	return s.load(ctx)
}

func (s *RedisStore) Dispatch(ctx context.Context, intent Intent) (err error) {
	lock, err := pkgredis.NewLock(s.client, s.client.CartLockKey(s.cart), s.lockTTL, s.lockOps...)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cart lock")
	}
	if err := lock.Acquire(ctx); err != nil {
		if errors.Is(err, pkgredis.ErrLockBusy) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart is being updated, retry")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire cart lock")
	}
	defer func() {
		if releaseErr := lock.Release(ctx); releaseErr != nil && err == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, releaseErr, "release cart lock")
		}
	}()

	current, err := s.load(ctx)
	if err != nil {
		return err
	}
	next, err := Apply(current, intent)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(next)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.client.Set(ctx, s.client.CartKey(s.cart), string(payload), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write cart")
	}
	return nil
}

// Ping reports whether redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *RedisStore) load(ctx context.Context) (State, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(s.cart))
	if err != nil {
		if pkgredis.IsNil(err) {
			return State{}, nil
		}
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart")
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	return state, nil
}
