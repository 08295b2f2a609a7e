// Package ledger independently tracks which blocks are currently live,
// using a plain set rather than the bitmap a buddy tree packs its own state
// into. It exists so tests can check non-overlap of live allocations
// through a code path that shares nothing with the structure under test.
package ledger

import (
	"fmt"

	set3 "github.com/TomTonic/Set3"
)

// Ledger records the individual block units currently covered by a live
// allocation. Units are tracked one at a time rather than as (offset, size)
// ranges, so two overlapping allocations always produce a detectable
// collision at Record time regardless of their relative sizes.
type Ledger struct {
	live *set3.Set3[uint64]
}

// New returns an empty Ledger.
func New() *Ledger {
	return &Ledger{live: set3.Empty[uint64]()}
}

// Record marks the half-open unit range [offset, offset+size) as live. It
// returns an error without mutating the ledger if any unit in the range is
// already recorded (the ledger's equivalent of the invariant that no two
// live allocations may overlap).
func (l *Ledger) Record(offset, size uint64) error {
	for u := offset; u < offset+size; u++ {
		if l.live.Contains(u) {
			return fmt.Errorf("ledger: unit %d already live (recording [%d,%d))", u, offset, offset+size)
		}
	}
	for u := offset; u < offset+size; u++ {
		l.live.Add(u)
	}
	return nil
}

// Release marks [offset, offset+size) as no longer live. It returns an
// error if any unit in the range was not recorded as live.
func (l *Ledger) Release(offset, size uint64) error {
	for u := offset; u < offset+size; u++ {
		if !l.live.Contains(u) {
			return fmt.Errorf("ledger: unit %d not live (releasing [%d,%d))", u, offset, offset+size)
		}
	}
	for u := offset; u < offset+size; u++ {
		l.live.Remove(u)
	}
	return nil
}

// LiveUnits reports how many individual units are currently recorded live,
// summed across every outstanding allocation.
func (l *Ledger) LiveUnits() int {
	return l.live.Len()
}
