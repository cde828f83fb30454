// ABOUTME: TrendSeries model for short-term per-biomarker value series.
// ABOUTME: Derived on demand by the trend aggregator, never persisted.
package models

import "time"

// TrendPoint is one day's value in a trend series.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TrendSeries is an ordered N-day value series for one biomarker,
// oldest to newest. PercentChange is nil when no trend can be computed
// (the window's earliest value is zero); nil means "no trend", not 0%.
type TrendSeries struct {
	Biomarker     Biomarker    `json:"biomarker"`
	Unit          string       `json:"unit"`
	Values        []TrendPoint `json:"values"`
	PercentChange *float64     `json:"percent_change,omitempty"`
}

// Latest returns the newest value in the series, or 0 when empty.
func (s TrendSeries) Latest() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1].Value
}
