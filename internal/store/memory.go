package store

import (
	"context"
	"encoding/json"
	"sync"

	"interview-service/internal/models"
)

// MemoryStore keeps sessions in process memory. Used for tests and for
// running the service without a configured MongoDB.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.InterviewSession, error) {
	s.mu.RLock()
	raw, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var session models.InterviewSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MemoryStore) Put(ctx context.Context, session *models.InterviewSession) error {
	// Serialize a private copy so later mutation of the caller's
	// session cannot leak into the stored record.
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[session.ID] = raw
	s.mu.Unlock()
	return nil
}
