// This file implements FIFO eviction.

package eviction

import "github.com/krisalay/smart-cache/types"

type fifo struct{}

func (fifo) Type() PolicyType { return FIFO }

// Less ignores reads completely: the earliest insertion goes first.
func (fifo) Less(a, b *types.Meta) bool {
	return olderInsert(a, b)
}
