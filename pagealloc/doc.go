// Package pagealloc adapts a buddy.Tree to a physical byte range bounded by
// an arbitrary, possibly-misaligned start address and a page-aligned end
// address. It carves a
// metadata prefix off the front of the range to back the tree's bitmap, and
// translates block offsets to page-aligned pointers for everything after
// it.
package pagealloc
