package expiration

import (
	"time"

	"github.com/krisalay/smart-cache/types"
)

// FixedTTL expires an entry TTL after it was written. Reads do not extend it.
type FixedTTL struct{}

func (FixedTTL) Kind() Kind { return Fixed }

func (FixedTTL) Deadline(m *types.Meta) time.Time {
	return m.CreatedAt.Add(m.TTL)
}

// IsExpired checks whether the entry is expired at this moment.
// An entry is still live at exactly CreatedAt + TTL.
func (f FixedTTL) IsExpired(m *types.Meta, now time.Time) bool {
	return expiredAfter(f.Deadline(m), now)
}
