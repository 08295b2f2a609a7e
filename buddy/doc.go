// Package buddy implements a bitmap-backed binary tree for power-of-two
// block allocation, the buddy allocation scheme. A Tree knows nothing about
// bytes, pages, or pointers, only block indices and counts. Callers that
// need to manage an actual byte-addressed heap should use package
// pagealloc, which wraps a Tree around a [start, end) byte range.
//
// A Tree is single-owner: it borrows a caller-supplied byte buffer for its
// metadata and is not safe for concurrent use without external
// synchronization.
package buddy
