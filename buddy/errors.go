package buddy

import "errors"

// ErrOutOfMemory is returned by Allocate when no free block of the
// requested depth is reachable.
var ErrOutOfMemory = errors.New("buddy: out of memory")

// ErrDoubleFree is returned by Free when no allocated block with the given
// offset exists. This covers both "already freed" and "never allocated";
// the tree has no way to tell those apart without extra bookkeeping and
// does not try.
var ErrDoubleFree = errors.New("buddy: double free")
