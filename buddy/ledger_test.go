package buddy

import (
	"testing"

	"github.com/micropuppy/buddyalloc/ledger"
)

// TestAllocationsNeverOverlapPerLedger checks P4 (no two live allocations
// overlap) by recording every allocate/free against an independent ledger
// that shares no code with Tree's own bitmap. A bug that corrupted Tree's
// bitmap bookkeeping but still returned plausible-looking offsets would
// still be caught here, since ledger.Record rejects overlapping ranges on
// its own.
func TestAllocationsNeverOverlapPerLedger(t *testing.T) {
	tree := New(make([]byte, StorageBytesRequired(32)), 32)
	led := ledger.New()

	sizes := []uint64{1, 2, 1, 4, 8, 1, 2, 1, 1, 2}
	var live []Allocation
	for _, size := range sizes {
		a, err := tree.Allocate(size)
		if err != nil {
			t.Fatalf("allocate(%d): %v", size, err)
		}
		if err := led.Record(a.Offset, a.Size); err != nil {
			t.Fatalf("ledger rejected allocate(%d) result %+v as overlapping: %v", size, a, err)
		}
		live = append(live, a)
	}

	// Free every third allocation and re-allocate some space; the ledger
	// must accept every resulting allocation as non-overlapping.
	for i := 0; i < len(live); i += 3 {
		if err := tree.Free(live[i].Offset); err != nil {
			t.Fatalf("free(%d): %v", live[i].Offset, err)
		}
		if err := led.Release(live[i].Offset, live[i].Size); err != nil {
			t.Fatalf("ledger release of freed allocation %+v: %v", live[i], err)
		}
	}

	a, err := tree.Allocate(1)
	if err != nil {
		t.Fatalf("allocate(1) after frees: %v", err)
	}
	if err := led.Record(a.Offset, a.Size); err != nil {
		t.Fatalf("ledger rejected allocate(1) result %+v after frees as overlapping: %v", a, err)
	}
}
