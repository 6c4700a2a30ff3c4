package eviction

import (
	"fmt"
	"strings"

	"github.com/krisalay/smart-cache/types"
)

/*
This file defines how the cache decides what to remove when it runs out of space.
*/

/*
Policy is the interface that all eviction strategies must follow.

The cache keeps the bookkeeping (access counts, timestamps, insertion order)
in each entry's Meta, so a policy holds no state of its own. It only answers
one question: given two live candidates, which one should go first?

The cache then scans its live entries once and removes the winner.
Capacities are small (tens to low hundreds), so an O(n) scan is cheaper to
reason about than keeping a second ordered structure in sync.
*/
type Policy interface {

	// Type reports which strategy this is.
	Type() PolicyType

	// Less reports whether a should be evicted before b.
	// Implementations must be a strict ordering; the last comparison
	// always falls back to Seq, which is unique per entry.
	Less(a, b *types.Meta) bool
}

// PolicyType is a simple identifier for supported eviction strategies.
type PolicyType string

const (
	// LFU (Least Frequently Used): evicts the entry with the lowest access count.
	// Ties go to the entry created first. This is the default: it keeps hot
	// entries and approximates LRU among equally cold ones.
	LFU PolicyType = "lfu"

	// LRU (Least Recently Used): evicts the entry that has not been read for the longest time.
	LRU PolicyType = "lru"

	// FIFO (First In First Out): evicts the oldest inserted entry, regardless of access.
	FIFO PolicyType = "fifo"
)

// ParsePolicyType maps a configuration string to a PolicyType.
// The empty string selects LFU.
func ParsePolicyType(s string) (PolicyType, error) {
	switch t := PolicyType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return LFU, nil
	case LFU, LRU, FIFO:
		return t, nil
	default:
		return "", fmt.Errorf("unknown eviction policy %q", s)
	}
}

// NewEvictionPolicy is a small factory function.
// Given a PolicyType, it creates the correct eviction policy.
func NewEvictionPolicy(t PolicyType) (Policy, error) {
	switch t {
	case LFU, "":
		return lfu{}, nil
	case LRU:
		return lru{}, nil
	case FIFO:
		return fifo{}, nil
	default:
		return nil, fmt.Errorf("unknown eviction policy %q", t)
	}
}

// Candidate pairs a key with the metadata a Policy compares.
type Candidate struct {
	Key  string
	Meta *types.Meta
}

// Victim returns the key the policy would evict first among candidates.
// It returns false when there is nothing to evict.
func Victim(p Policy, candidates []Candidate) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if p.Less(c.Meta, best.Meta) {
			best = c
		}
	}
	return best.Key, true
}

// olderInsert is the shared final tiebreak: earliest CreatedAt, then lowest Seq.
func olderInsert(a, b *types.Meta) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.Seq < b.Seq
}
