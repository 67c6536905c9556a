package kvstore

import "testing"

// NewTestStore creates a fresh in-memory store for tests.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}

	t.Cleanup(func() { s.Close() })

	return s
}
