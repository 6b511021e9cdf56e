package dedupe

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/finvoy/ledger-notify/internal/interfaces"
)

// FileStore is the persisted dedupe log: one already-notified posting id
// per line, loaded fully at startup and appended to on each dispatch. It
// is never pruned, which is a documented limitation. Single writer only;
// concurrent processes sharing one file are unsupported.
type FileStore struct {
	mu   sync.Mutex
	path string
	seen map[int64]struct{}
	file *os.File
}

// OpenFileStore loads the log at path, creating it when absent. Malformed
// lines are skipped rather than failing the whole load.
func OpenFileStore(path string) (*FileStore, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("dedupe: open %s: %w", path, err)
	}

	seen := make(map[int64]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			continue
		}
		seen[id] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		file.Close()
		return nil, fmt.Errorf("dedupe: read %s: %w", path, err)
	}

	return &FileStore{path: path, seen: seen, file: file}, nil
}

func (s *FileStore) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.seen[id]
	return ok
}

// Add marks the id as notified. The in-memory mark always happens, even
// when the append to disk fails; the caller logs the returned error and
// carries on, trading durability for not flooding duplicates within one
// process lifetime.
func (s *FileStore) Add(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen[id] = struct{}{}

	if _, err := fmt.Fprintf(s.file, "%d\n", id); err != nil {
		return fmt.Errorf("dedupe: append %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.file.Close()
}

var _ interfaces.DedupeStore = (*FileStore)(nil)
