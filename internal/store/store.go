package store

import (
	"context"
	"errors"
	"sync"

	"interview-service/internal/models"
)

// ErrNotFound is returned when a session id has no persisted record.
var ErrNotFound = errors.New("session not found")

// SessionStore is a keyed record of interview sessions. Put is an
// upsert of the whole record; callers serialize read-modify-write
// cycles for one session through Lock.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.InterviewSession, error)
	Put(ctx context.Context, session *models.InterviewSession) error
}

// KeyedMutex hands out one mutex per session id so concurrent evaluate
// calls against the same session cannot lose results to a
// read-modify-write race. Mutexes are never released; session ids are
// bounded by session creation volume.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for a key and returns its unlock func.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
