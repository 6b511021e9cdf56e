package dedupe

import (
	"sync"

	"github.com/finvoy/ledger-notify/internal/interfaces"
)

// MemoryStore is the in-memory DedupeStore used by tests. An optional
// AddErr simulates a persistence fault: the id is still marked, mirroring
// the FileStore contract.
type MemoryStore struct {
	mu     sync.Mutex
	seen   map[int64]struct{}
	AddErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[int64]struct{})}
}

func (s *MemoryStore) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.seen[id]
	return ok
}

func (s *MemoryStore) Add(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen[id] = struct{}{}
	return s.AddErr
}

var _ interfaces.DedupeStore = (*MemoryStore)(nil)
