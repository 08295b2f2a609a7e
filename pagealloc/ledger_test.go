package pagealloc

import (
	"testing"

	"github.com/micropuppy/buddyalloc/ledger"
)

// TestAllocatorAllocationsNeverOverlapPerLedger mirrors the buddy package's
// own ledger-backed P4 check, one layer up: it drives the page allocator
// instead of the raw tree, converting each Allocation's byte Ptr/Size back
// into page units before recording it.
func TestAllocatorAllocationsNeverOverlapPerLedger(t *testing.T) {
	const start = 0
	const end = 64 * PageSize
	region := make([]byte, end-start)
	a := New(region, start)
	led := ledger.New()

	sizes := []uint64{1, 2, 4, 1, 8, 2, 1}
	var live []Allocation
	for _, size := range sizes {
		alloc, err := a.Allocate(size)
		if err != nil {
			t.Fatalf("allocate(%d): %v", size, err)
		}
		offsetPages := (uint64(alloc.Ptr) - a.heap) / PageSize
		sizePages := uint64(alloc.Size) / PageSize
		if err := led.Record(offsetPages, sizePages); err != nil {
			t.Fatalf("ledger rejected allocate(%d) result %+v as overlapping: %v", size, alloc, err)
		}
		live = append(live, alloc)
	}

	for _, alloc := range live {
		if err := a.Free(alloc); err != nil {
			t.Fatalf("free(%+v): %v", alloc, err)
		}
		offsetPages := (uint64(alloc.Ptr) - a.heap) / PageSize
		sizePages := uint64(alloc.Size) / PageSize
		if err := led.Release(offsetPages, sizePages); err != nil {
			t.Fatalf("ledger release of %+v: %v", alloc, err)
		}
	}
}
