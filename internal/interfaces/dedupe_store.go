package interfaces

// DedupeStore remembers which posting ids have already been notified by the
// continuous monitor. Implementations are single-writer: exactly one
// process instance may call Add at any time.
type DedupeStore interface {
	Contains(id int64) bool
	Add(id int64) error
}
