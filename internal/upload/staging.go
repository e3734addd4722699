// Package upload holds raw bytes between the moment a client pushes
// them and the moment the CDN pulls them back by id.
package upload

import (
	"sync"

	"github.com/google/uuid"
)

// Staging is a transient keyed buffer shared across in-flight requests.
// Entries are meant to live for a single pull-upload round trip; the
// code that stages bytes is responsible for releasing them on every
// exit path so the map never accumulates orphaned buffers.
type Staging struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewStaging() *Staging {
	return &Staging{entries: make(map[string][]byte)}
}

// Stage stores payload under a fresh random identifier and returns it.
// Identifiers are random 128-bit values, unique for the process
// lifetime.
func (s *Staging) Stage(payload []byte) string {
	id := uuid.New().String()

	s.mu.Lock()
	s.entries[id] = payload
	s.mu.Unlock()

	return id
}

// Take returns the staged bytes for id if present. It does not remove
// the entry; callers needing one-time semantics pair it with Release.
func (s *Staging) Take(id string) ([]byte, bool) {
	s.mu.Lock()
	payload, ok := s.entries[id]
	s.mu.Unlock()

	return payload, ok
}

// Release removes the entry for id. Releasing an absent id is a no-op.
func (s *Staging) Release(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Len reports the number of currently staged entries.
func (s *Staging) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
