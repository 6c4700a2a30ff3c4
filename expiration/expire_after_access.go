package expiration

import (
	"time"

	"github.com/krisalay/smart-cache/types"
)

/*
ExpireAfterAccess implements a very common cache behavior called "expire after access" or "sliding TTL".
Every time someone reads the data, the expiration timer is pushed forward. As long as the data keeps
getting used, it stays alive. If nobody touches it for a while, it expires.

The cache moves LastAccessedAt on every successful read, so the deadline
simply follows it.
*/
type ExpireAfterAccess struct{}

func (ExpireAfterAccess) Kind() Kind { return Sliding }

func (ExpireAfterAccess) Deadline(m *types.Meta) time.Time {
	return m.LastAccessedAt.Add(m.TTL)
}

// IsExpired checks whether the entry is expired at this moment.
func (e ExpireAfterAccess) IsExpired(m *types.Meta, now time.Time) bool {
	return expiredAfter(e.Deadline(m), now)
}
