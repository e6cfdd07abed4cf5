package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/core/domain"
)

type memStore struct {
	mu     sync.Mutex
	delay  time.Duration
	events []domain.AuditEvent
}

func (s *memStore) Insert(_ context.Context, e domain.AuditEvent) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *memStore) snapshot() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	store := &memStore{}
	d := NewDispatcher(2, store, zerolog.Nop())
	d.Start()
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEvent{ID: "e", Action: domain.AuditSignin, SubjectID: "u1", At: time.Now()})
	}

	waitFor(t, func() bool { return len(store.snapshot()) == 10 })
}

func TestDispatcher_PerSubjectOrdering(t *testing.T) {
	store := &memStore{}
	d := NewDispatcher(4, store, zerolog.Nop())
	d.Start()
	defer d.Stop()

	details := []string{"first", "second", "third", "fourth"}
	for _, detail := range details {
		d.Record(domain.AuditEvent{Action: domain.AuditSignin, SubjectID: "same-user", Detail: detail, At: time.Now()})
	}

	waitFor(t, func() bool { return len(store.snapshot()) == len(details) })

	got := store.snapshot()
	for i, e := range got {
		if e.Detail != details[i] {
			t.Fatalf("events out of order: got %v", got)
		}
	}
}

func TestDispatcher_StopDrainsBufferedEvents(t *testing.T) {
	// A slow store keeps events buffered in the channel; Stop must not
	// return until the worker has persisted all of them.
	store := &memStore{delay: 5 * time.Millisecond}
	d := NewDispatcher(1, store, zerolog.Nop())
	d.Start()

	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEvent{Action: domain.AuditSignin, SubjectID: "u1", At: time.Now()})
	}

	d.Stop()

	if got := len(store.snapshot()); got != 10 {
		t.Fatalf("expected all 10 buffered events persisted after Stop, got %d", got)
	}
}

func TestDispatcher_RecordAfterStopIsDropped(t *testing.T) {
	store := &memStore{}
	d := NewDispatcher(1, store, zerolog.Nop())
	d.Start()
	d.Stop()

	// Must neither panic nor persist.
	d.Record(domain.AuditEvent{Action: domain.AuditSignin, SubjectID: "u1", At: time.Now()})

	if got := len(store.snapshot()); got != 0 {
		t.Fatalf("expected no events after Stop, got %d", got)
	}
}

func TestDispatcher_StopIsIdempotent(t *testing.T) {
	d := NewDispatcher(2, &memStore{}, zerolog.Nop())
	d.Start()

	done := make(chan struct{})
	go func() {
		d.Stop()
		d.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("repeated Stop did not return")
	}
}
