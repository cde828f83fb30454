// ABOUTME: CacheEntry model for the per-date published pipeline result.
// ABOUTME: Entries are replaced wholesale on refresh; partial updates are forbidden.
package models

import "time"

// CacheTTL is how long a cache entry stays fresh before the pipeline
// recomputes it.
const CacheTTL = 5 * time.Minute

// CacheEntry bundles everything the pipeline computed for one calendar day.
// Raw, Recovery, and Sleep may all be nil for a day with no underlying
// data; that is a valid cached empty state, not a failure.
type CacheEntry struct {
	Date      time.Time                 `json:"date"`
	Raw       *DailyMetrics             `json:"raw,omitempty"`
	Baseline  BaselineSnapshot          `json:"baseline"`
	Recovery  *CompositeScoreResult     `json:"recovery,omitempty"`
	Sleep     *CompositeScoreResult     `json:"sleep,omitempty"`
	Trends    map[Biomarker]TrendSeries `json:"trends,omitempty"`
	Timestamp time.Time                 `json:"timestamp"`
}

// Key returns the calendar-day cache key for the entry.
func (e *CacheEntry) Key() string {
	return DayKey(e.Date)
}

// Expired reports whether the entry is older than the TTL at the given time.
func (e *CacheEntry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.Timestamp) > ttl
}
