package pagealloc

import (
	"errors"
	"fmt"

	"github.com/micropuppy/buddyalloc/buddy"
)

// Allocation is the page-granular counterpart to buddy.Allocation: Ptr and
// Size are expressed in bytes, not blocks, and Ptr is the address, within
// the logical address space the owning Allocator was constructed over, of
// the first byte of the allocation.
type Allocation struct {
	Ptr  uintptr
	Size uintptr
}

func (a Allocation) String() string {
	return fmt.Sprintf("Allocation{Ptr: %#x, Size: %#x}", a.Ptr, a.Size)
}

// Allocator wraps a buddy.Tree over a logical byte range [start, start+len(region)),
// carving a metadata prefix off the front to back the tree's bitmap and
// presenting everything from the page-aligned heap pointer onward as
// allocatable. start is caller-chosen rather than derived from region's own
// runtime address, so that a possibly-misaligned physical range can be
// modeled exactly with an ordinarily-aligned Go byte slice as its backing
// store.
type Allocator struct {
	tree *buddy.Tree

	region       []byte
	start        uint64
	heap         uint64
	heapLenPages uint64
}

// New constructs an Allocator modeling the logical range [start, start+len(region)).
// That range's end must be page-aligned; New panics otherwise, and panics if
// region is empty. region supplies the real backing storage (its first
// bytes hold the buddy tree's bitmap), and start need not be a multiple of
// region's own alignment in Go's heap.
func New(region []byte, start uint64) *Allocator {
	if len(region) == 0 {
		panic("pagealloc: region must not be empty")
	}

	end := start + uint64(len(region))
	if end%PageSize != 0 {
		panic("pagealloc: region end must be page-aligned")
	}

	l := computeLayout(start, end)

	// The metadata buffer backs the Tree starting at the raw (possibly
	// unaligned) start address, not startAligned: only heap itself is
	// page-aligned. Since region[0] corresponds to address start, the
	// buffer is simply region's own prefix.
	tree := buddy.New(region[:l.treeLen], l.nominalPages)

	return &Allocator{
		tree:         tree,
		region:       region,
		start:        start,
		heap:         l.heap,
		heapLenPages: l.heapLenPages,
	}
}

// Allocate reserves blockCount contiguous pages and returns a page-aligned
// pointer into the managed region.
func (a *Allocator) Allocate(blockCount uint64) (Allocation, error) {
	alloc, err := a.tree.Allocate(blockCount)
	if err != nil {
		return Allocation{}, ErrOutOfMemory
	}

	if alloc.Offset+alloc.Size > a.heapLenPages {
		// The tree's nominal extent overruns the real heap because the
		// metadata prefix consumed part of it. Give the block back and
		// fail this request without disturbing the tree's state for
		// smaller requests that would still fit.
		if err := a.tree.Free(alloc.Offset); err != nil {
			panic(fmt.Sprintf("pagealloc: freeing a just-allocated block failed: %v", err))
		}
		return Allocation{}, ErrOutOfMemory
	}

	return Allocation{
		Ptr:  uintptr(a.heap + alloc.Offset*PageSize),
		Size: uintptr(alloc.Size * PageSize),
	}, nil
}

// Free releases an allocation previously returned by Allocate.
func (a *Allocator) Free(alloc Allocation) error {
	ptr := uint64(alloc.Ptr)
	if ptr < a.heap {
		return ErrDoubleFree
	}
	delta := ptr - a.heap
	if delta%PageSize != 0 {
		return ErrDoubleFree
	}
	offset := delta / PageSize
	if offset > a.heapLenPages {
		return ErrDoubleFree
	}

	if err := a.tree.Free(offset); err != nil {
		if errors.Is(err, buddy.ErrDoubleFree) {
			return ErrDoubleFree
		}
		return err
	}
	return nil
}

// Bytes returns a Go slice view of alloc's bytes, for callers that want to
// read or write through the allocation without doing their own pointer
// arithmetic.
func (a *Allocator) Bytes(alloc Allocation) []byte {
	idx := uint64(alloc.Ptr) - a.start
	return a.region[idx : idx+uint64(alloc.Size)]
}

// HeapLenPages reports the number of real, addressable pages behind this
// allocator, the quantity Allocate and Free bound requests against.
func (a *Allocator) HeapLenPages() uint64 { return a.heapLenPages }
