// Package counter provides the shared counter mutated by bot handlers.
package counter

import (
	"fmt"
	"sync/atomic"
)

// Store is a process-wide unsigned counter safe for concurrent use.
// The zero value is ready to use and starts at 0.
//
// Increments past math.MaxUint64 wrap around to 0.
type Store struct {
	value atomic.Uint64
}

// New returns an empty counter.
func New() *Store {
	return &Store{}
}

// Reset sets the counter back to zero.
func (s *Store) Reset() {
	s.value.Store(0)
}

// IncrementAndGet adds one and returns the resulting value.
func (s *Store) IncrementAndGet() uint64 {
	return s.value.Add(1)
}

// Value returns the current snapshot.
func (s *Store) Value() uint64 {
	return s.value.Load()
}

// Format renders v as a decimal left-padded with zeros to four digits.
// Larger values are rendered in full.
func Format(v uint64) string {
	return fmt.Sprintf("%04d", v)
}
