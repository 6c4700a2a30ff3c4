// This file defines how cache entries expire over time.

package expiration

import (
	"fmt"
	"strings"
	"time"

	"github.com/krisalay/smart-cache/types"
)

/*
Strategy is the interface that all expiration rules must follow. Instead of hard-coding
expiration logic into the cache, we define a strategy so expiration behavior can be swapped easily.

Every strategy reads the per-entry TTL from Meta; the strategy only decides
which instant the TTL is measured from.
*/
type Strategy interface {

	// Kind reports which strategy this is.
	Kind() Kind

	// Deadline is the last instant at which the entry is still live.
	Deadline(*types.Meta) time.Time

	// IsExpired reports whether the entry is no longer live at now.
	IsExpired(*types.Meta, time.Time) bool
}

// Kind identifies an expiration strategy in configuration.
type Kind string

const (
	// Fixed measures TTL from the write: live iff now - CreatedAt <= TTL.
	Fixed Kind = "fixed"

	// Sliding measures TTL from the last successful read.
	Sliding Kind = "sliding"
)

// ParseKind maps a configuration string to a Kind. The empty string selects Fixed.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return Fixed, nil
	case Fixed, Sliding:
		return k, nil
	default:
		return "", fmt.Errorf("unknown expiration strategy %q", s)
	}
}

// New returns the strategy for k.
func New(k Kind) (Strategy, error) {
	switch k {
	case Fixed, "":
		return FixedTTL{}, nil
	case Sliding:
		return ExpireAfterAccess{}, nil
	default:
		return nil, fmt.Errorf("unknown expiration strategy %q", k)
	}
}

// expiredAfter reports whether now is strictly past deadline.
func expiredAfter(deadline, now time.Time) bool {
	return now.After(deadline)
}
