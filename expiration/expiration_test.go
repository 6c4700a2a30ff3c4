package expiration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/smart-cache/types"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFixedTTL(t *testing.T) {
	m := &types.Meta{CreatedAt: base, LastAccessedAt: base, TTL: 100 * time.Millisecond}
	s := FixedTTL{}

	assert.False(t, s.IsExpired(m, base))
	assert.False(t, s.IsExpired(m, base.Add(100*time.Millisecond)), "live at exactly createdAt+ttl")
	assert.True(t, s.IsExpired(m, base.Add(101*time.Millisecond)))

	// Reads do not extend a fixed TTL.
	m.Touch(base.Add(90 * time.Millisecond))
	assert.True(t, s.IsExpired(m, base.Add(150*time.Millisecond)))
}

func TestExpireAfterAccess(t *testing.T) {
	m := &types.Meta{CreatedAt: base, LastAccessedAt: base, TTL: 100 * time.Millisecond}
	s := ExpireAfterAccess{}

	m.Touch(base.Add(90 * time.Millisecond))
	assert.False(t, s.IsExpired(m, base.Add(150*time.Millisecond)))
	assert.True(t, s.IsExpired(m, base.Add(191*time.Millisecond)))
	assert.Equal(t, base.Add(190*time.Millisecond), s.Deadline(m))
}

func TestParseKindAndNew(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, Fixed, k)

	k, err = ParseKind("Sliding")
	require.NoError(t, err)
	assert.Equal(t, Sliding, k)

	s, err := New(k)
	require.NoError(t, err)
	assert.Equal(t, Sliding, s.Kind())

	_, err = ParseKind("forever")
	assert.Error(t, err)
	_, err = New("forever")
	assert.Error(t, err)
}
