package buddy

import (
	"fmt"
	"math/bits"
)

// Tree is a complete binary tree of block states, packed into a
// caller-provided byte buffer. It is constructed once and mutated in place
// by Allocate and Free; it never allocates memory of its own beyond what
// New is given.
type Tree struct {
	storage    []byte
	leafBlocks uint64 // always a power of two
	depth      uint
	firstLeaf  uint64
}

// Allocation describes a successful Allocate: size is always the smallest
// power of two >= the requested size, and offset is always a multiple of
// size.
type Allocation struct {
	Offset uint64
	Size   uint64
}

func (a Allocation) String() string {
	return fmt.Sprintf("Allocation{Offset: %d, Size: %d}", a.Offset, a.Size)
}

// New constructs a Tree over buf, initializing every block to Free. buf
// must be at least StorageBytesRequired(leafBlocks) bytes; New panics if it
// is not, or if leafBlocks is 0. Only the bytes the tree actually needs are
// retained, a wider buf is truncated, not zero-extended beyond what's
// used.
func New(buf []byte, leafBlocks uint64) *Tree {
	if leafBlocks == 0 {
		panic("buddy: tree must have at least 1 leaf block")
	}

	l := nextPow2(leafBlocks)
	depth := uint(bits.Len64(l) - 1)
	firstLeaf := l - 1

	need := StorageBytesRequired(leafBlocks)
	if uint64(len(buf)) < need {
		panic(fmt.Sprintf("buddy: storage must be at least %d bytes to store a tree with %d leaf blocks", need, leafBlocks))
	}
	buf = buf[:need]
	clear(buf)

	return &Tree{
		storage:    buf,
		leafBlocks: l,
		depth:      depth,
		firstLeaf:  firstLeaf,
	}
}

// Depth returns the tree's depth (root = depth 0).
func (t *Tree) Depth() uint { return t.depth }

// LeafBlocks returns the tree's leaf capacity, rounded up to a power of two.
func (t *Tree) LeafBlocks() uint64 { return t.leafBlocks }

func (t *Tree) blockCount() uint64 {
	return (uint64(1) << (t.depth + 1)) - 1
}

func (t *Tree) hasBlock(b blockIndex) bool {
	return uint64(b) < t.blockCount()
}

// heightForSize returns the smallest height h such that 2^h >= size, and
// an ok=false if size is 0 (which can never be satisfied).
func heightForSize(size uint64) (height uint, ok bool) {
	switch {
	case size == 0:
		return 0, false
	case size == 1:
		return 0, true
	default:
		return uint(bits.Len64(size-1)), true
	}
}

// Allocate attempts to reserve size contiguous blocks. On success it
// returns the lowest available offset at the resulting depth; ties are
// never possible because the walk always visits the left child first.
func (t *Tree) Allocate(size uint64) (Allocation, error) {
	height, ok := heightForSize(size)
	if !ok {
		return Allocation{}, ErrOutOfMemory
	}
	if height > t.depth {
		return Allocation{}, ErrOutOfMemory
	}
	targetDepth := t.depth - height

	target, found := t.walk(func(b blockIndex) walkAction {
		switch {
		case b.depth() == targetDepth:
			if t.state(b) == stateFree {
				return actionYield
			}
			return actionSkip
		case t.state(b).full():
			return actionSkip
		default:
			return actionDescend
		}
	})
	if !found {
		return Allocation{}, ErrOutOfMemory
	}

	t.setState(target, stateAllocated)
	t.fixupAfterAllocate(target)

	return Allocation{
		Offset: target.offset() << height,
		Size:   uint64(1) << height,
	}, nil
}

// fixupAfterAllocate walks from the newly-allocated block toward the root,
// marking each ancestor Superblock or SuperblockFull. Once we encounter an
// ancestor whose other child still has free capacity, everything further
// up can only ever become a (non-full) Superblock, since an allocation
// never frees capacity elsewhere.
func (t *Tree) fixupAfterAllocate(b blockIndex) {
	stillFull := true
	for !b.isRoot() {
		buddy := b.buddy()
		parent := b.parent()
		if stillFull && t.state(buddy).full() {
			t.setState(parent, stateSuperblockFull)
		} else {
			t.setState(parent, stateSuperblock)
			stillFull = false
		}
		b = parent
	}
}

// Free releases the allocation that was returned with the given offset. It
// locates the allocated block by walking the tree. Offset alone does not
// identify a unique node, since the same numeric offset recurs at every
// depth, but it does identify a unique live allocation.
func (t *Tree) Free(offset uint64) error {
	target, found := t.walk(func(b blockIndex) walkAction {
		switch t.state(b) {
		case stateAllocated:
			height := t.depth - b.depth()
			if b.offset()<<height == offset {
				return actionYield
			}
			return actionSkip
		case stateFree:
			return actionSkip
		default: // Superblock, SuperblockFull
			return actionDescend
		}
	})
	if !found {
		return ErrDoubleFree
	}

	t.setState(target, stateFree)
	t.fixupAfterFree(target)
	return nil
}

// fixupAfterFree is the mirror image of fixupAfterAllocate: it walks
// toward the root marking ancestors Free for as long as both children are
// free, then Superblock from the first non-free buddy up to the root.
func (t *Tree) fixupAfterFree(b blockIndex) {
	stillFree := true
	for !b.isRoot() {
		buddy := b.buddy()
		parent := b.parent()
		if stillFree && t.state(buddy) == stateFree {
			t.setState(parent, stateFree)
		} else {
			t.setState(parent, stateSuperblock)
			stillFree = false
		}
		b = parent
	}
}
