package pagealloc

import "github.com/micropuppy/buddyalloc/buddy"

// PageSize is the fixed block size, in bytes, that this allocator manages.
const PageSize = 4096

// layout is the pure arithmetic half of New: every field it computes can be
// checked against known-good byte offsets without needing real memory, real
// alignment, or an unsafe.Pointer in play.
type layout struct {
	startAligned uint64
	nominalPages uint64
	treeLen      uint64
	heap         uint64
	heapLenPages uint64
}

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

// computeLayout derives the metadata/heap split for the raw range
// [start, end). end must already be page-aligned; the caller checks this
// before calling computeLayout, since computeLayout has no way to signal
// failure on its own. It is pure arithmetic; its only panic comes from
// buddy.StorageBytesRequired when the range holds no whole page.
func computeLayout(start, end uint64) layout {
	startAligned := alignUp(start, PageSize)
	nominalPages := (end - startAligned) / PageSize
	treeLen := buddy.StorageBytesRequired(nominalPages)
	heap := alignUp(start+treeLen, PageSize)
	heapLenPages := (end - heap) / PageSize

	return layout{
		startAligned: startAligned,
		nominalPages: nominalPages,
		treeLen:      treeLen,
		heap:         heap,
		heapLenPages: heapLenPages,
	}
}
