package memstore

import "errors"

// ErrWriteDisabled is returned by Set while FailWrites is on.
var ErrWriteDisabled = errors.New("memstore: writes disabled")

// Store keeps values in a map for the lifetime of the process.
// Used for --store memory and throughout the tests.
type Store struct {
	m map[string]string

	// FailWrites emulates a full or disabled backing store.
	FailWrites bool
}

func New() *Store { return &Store{m: map[string]string{}} }

func (s *Store) Get(key string) (string, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	if s.FailWrites {
		return ErrWriteDisabled
	}
	s.m[key] = value
	return nil
}

func (s *Store) Close() error { return nil }
