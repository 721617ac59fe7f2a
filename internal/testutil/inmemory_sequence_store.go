package testutil

import (
	"context"
	"sync"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/sequence"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
)

// InMemorySequenceStore implements sequence.Repository. Next is atomic under
// one mutex, standing in for the single upsert the postgres store runs.
type InMemorySequenceStore struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

var _ sequence.Repository = (*InMemorySequenceStore)(nil)

func NewInMemorySequenceStore() *InMemorySequenceStore {
	return &InMemorySequenceStore{values: make(map[string]int64)}
}

// FailWith makes every call return err until it is called with nil
func (s *InMemorySequenceStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemorySequenceStore) Next(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return 0, ierr.WithError(s.err).
			WithHintf("Could not allocate the next %s number", name).
			Mark(ierr.ErrAllocationFailed)
	}
	s.values[name]++
	return s.values[name], nil
}

func (s *InMemorySequenceStore) Current(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return 0, s.err
	}
	return s.values[name], nil
}

func (s *InMemorySequenceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]int64)
	s.err = nil
}
