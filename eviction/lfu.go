// This file implements LFU eviction.

package eviction

import "github.com/krisalay/smart-cache/types"

type lfu struct{}

func (lfu) Type() PolicyType { return LFU }

// Less prefers the entry read the fewest times. Among equally cold entries
// the one created first loses.
func (lfu) Less(a, b *types.Meta) bool {
	if a.AccessCount != b.AccessCount {
		return a.AccessCount < b.AccessCount
	}
	return olderInsert(a, b)
}
