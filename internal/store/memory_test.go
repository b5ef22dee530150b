package store

import (
	"context"
	"sync"
	"testing"

	"interview-service/internal/models"
)

func TestMemoryStoreGetUnknownID(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStorePutGetRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	session := &models.InterviewSession{
		ID:     "s1",
		Domain: "backend",
		Level:  "all",
		Questions: []models.Question{
			{Prompt: "q1", Category: "technical", Difficulty: "easy", Weight: 1},
		},
		Scores:         []models.Result{},
		TotalQuestions: 1,
	}
	if err := s.Put(ctx, session); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Get(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Domain != "backend" || len(loaded.Questions) != 1 {
		t.Errorf("loaded session wrong: %+v", loaded)
	}
}

func TestMemoryStoreIsolatesRecords(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	session := &models.InterviewSession{ID: "s1", Domain: "backend", Scores: []models.Result{}}
	if err := s.Put(ctx, session); err != nil {
		t.Fatal(err)
	}

	// Mutation after Put must not reach the stored record.
	session.Scores = append(session.Scores, models.Result{Question: "late write"})

	loaded, err := s.Get(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Scores) != 0 {
		t.Error("store leaked a reference to the caller's session")
	}

	// Mutation of a loaded copy must not reach the stored record either.
	loaded.Domain = "tampered"
	again, _ := s.Get(ctx, "s1")
	if again.Domain != "backend" {
		t.Error("loaded sessions share state")
	}
}

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	km := NewKeyedMutex()

	const workers = 32
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := km.Lock("same-session")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d (lost updates)", counter, workers)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	unlockA := km.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("b")
		unlockB()
		close(done)
	}()
	<-done // must not deadlock while "a" is held
	unlockA()
}
