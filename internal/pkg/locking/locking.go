package locking

import (
	"errors"
	"sync"

	"github.com/go-redsync/redsync/v4"
)

var ErrLockHeld = errors.New("lock already held")

// RedsyncLocker serializes workflows across instances with redis mutexes.
type RedsyncLocker struct {
	rs *redsync.Redsync
}

func NewRedsyncLocker(rs *redsync.Redsync) *RedsyncLocker {
	return &RedsyncLocker{rs}
}

func (l *RedsyncLocker) TryLock(key string) (func() error, error) {
	mutex := l.rs.NewMutex(key)
	if err := mutex.TryLock(); err != nil {
		return nil, ErrLockHeld
	}

	return func() error {
		_, err := mutex.Unlock()
		return err
	}, nil
}

// LocalLocker is an in-process Locker for tests and single-node setups.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: map[string]bool{}}
}

func (l *LocalLocker) TryLock(key string) (func() error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[key] {
		return nil, ErrLockHeld
	}
	l.held[key] = true

	return func() error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, nil
}
