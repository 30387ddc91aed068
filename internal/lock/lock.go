package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Locker grants short-lived exclusive ownership of a key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (*LockResult, error)
	Release(ctx context.Context, lr *LockResult) error
}

// LockResult identifies a held lock by its owner token.
type LockResult struct {
	Key      string
	Value    string
	acquired bool
}

// IsAcquired reports whether the caller owns the lock.
func (lr *LockResult) IsAcquired() bool {
	return lr != nil && lr.acquired
}

// LocalLocker is an in-process Locker for single-instance deployments.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localEntry
	clock func() time.Time
}

type localEntry struct {
	value     string
	expiresAt time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]localEntry),
		clock: time.Now,
	}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (*LockResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if e, ok := l.held[key]; ok && now.Before(e.expiresAt) {
		return &LockResult{Key: key}, nil
	}

	value := uuid.NewString()
	l.held[key] = localEntry{value: value, expiresAt: now.Add(ttl)}
	return &LockResult{Key: key, Value: value, acquired: true}, nil
}

func (l *LocalLocker) Release(_ context.Context, lr *LockResult) error {
	if !lr.IsAcquired() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.held[lr.Key]; ok && e.value == lr.Value {
		delete(l.held, lr.Key)
	}
	return nil
}
