// ABOUTME: BaselineSnapshot model holding per-biomarker rolling statistics.
// ABOUTME: Embedded verbatim into persisted scores for reproducible audits.
package models

import "time"

// BaselineStat is the rolling statistic for one biomarker.
type BaselineStat struct {
	Mean        float64 `json:"mean"`
	SampleCount int     `json:"sample_count"`
}

// BaselineSnapshot holds the per-biomarker baselines computed for a target
// date from historical daily values strictly before that date. A biomarker
// with too few valid samples is simply absent from Stats. Snapshots are
// immutable once produced and are recomputed fresh on every pipeline run.
type BaselineSnapshot struct {
	Date         time.Time                  `json:"date"`
	LookbackDays int                        `json:"lookback_days"`
	Stats        map[Biomarker]BaselineStat `json:"stats"`
}

// Mean returns the baseline mean for a biomarker and whether one exists.
func (s BaselineSnapshot) Mean(b Biomarker) (float64, bool) {
	stat, ok := s.Stats[b]
	if !ok {
		return 0, false
	}
	return stat.Mean, true
}

// Has reports whether a baseline exists for the biomarker.
func (s BaselineSnapshot) Has(b Biomarker) bool {
	_, ok := s.Stats[b]
	return ok
}
