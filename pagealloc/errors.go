package pagealloc

import (
	"fmt"

	"github.com/micropuppy/buddyalloc/buddy"
)

// ErrOutOfMemory and ErrDoubleFree wrap the buddy package's sentinels so
// errors.Is still matches at either layer, while prefixing the error text
// with this package's name.
var (
	ErrOutOfMemory = fmt.Errorf("pagealloc: %w", buddy.ErrOutOfMemory)
	ErrDoubleFree  = fmt.Errorf("pagealloc: %w", buddy.ErrDoubleFree)
)
