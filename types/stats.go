package types

/*
Stats is a point-in-time snapshot of one cache instance.

Size counts LIVE entries only. Entries is the physical count, which may
include expired entries that no lookup or cleanup pass has reclaimed yet.
OldestItem and NewestItem are Unix milliseconds of the min/max CreatedAt
across live entries, 0 when the cache is empty.
*/
type Stats struct {
	Name               string  `json:"name,omitempty" yaml:"name,omitempty"`
	Size               int     `json:"size" yaml:"size"`
	Entries            int     `json:"entries" yaml:"entries"`
	MaxSize            int     `json:"max_size" yaml:"max_size"`
	Hits               uint64  `json:"hits" yaml:"hits"`
	Misses             uint64  `json:"misses" yaml:"misses"`
	Evictions          uint64  `json:"evictions" yaml:"evictions"`
	Expirations        uint64  `json:"expirations" yaml:"expirations"`
	HitRate            float64 `json:"hit_rate" yaml:"hit_rate"`
	AverageAccessCount float64 `json:"average_access_count" yaml:"average_access_count"`
	OldestItem         int64   `json:"oldest_item" yaml:"oldest_item"`
	NewestItem         int64   `json:"newest_item" yaml:"newest_item"`
}

// HitRate returns hits / (hits + misses), or 0 when there were no lookups.
func HitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
