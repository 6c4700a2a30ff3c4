// This file implements LRU eviction.

package eviction

import "github.com/krisalay/smart-cache/types"

type lru struct{}

func (lru) Type() PolicyType { return LRU }

// Less prefers the entry whose last read (or write, if never read) is oldest.
func (lru) Less(a, b *types.Meta) bool {
	if !a.LastAccessedAt.Equal(b.LastAccessedAt) {
		return a.LastAccessedAt.Before(b.LastAccessedAt)
	}
	return a.Seq < b.Seq
}
