// ABOUTME: Biomarker enum and unit map for physiological time-series data.
// ABOUTME: Defines the recovery and sleep biomarkers consumed by the scoring pipeline.
package models

// Biomarker represents a single measurable physiological quantity.
type Biomarker string

const (
	// Recovery
	BiomarkerHRV       Biomarker = "hrv"
	BiomarkerRHR       Biomarker = "rhr"
	BiomarkerRespRate  Biomarker = "respiratory_rate"
	BiomarkerWalkingHR Biomarker = "walking_hr"
	BiomarkerSpO2      Biomarker = "spo2"

	// Sleep
	BiomarkerSleepDuration Biomarker = "sleep_duration"
	BiomarkerDeepSleep     Biomarker = "deep_sleep"
	BiomarkerREMSleep      Biomarker = "rem_sleep"
	BiomarkerBedtime       Biomarker = "bedtime"
	BiomarkerWakeTime      Biomarker = "wake_time"
)

// BiomarkerUnits maps biomarkers to their display units.
var BiomarkerUnits = map[Biomarker]string{
	BiomarkerHRV:           "ms",
	BiomarkerRHR:           "bpm",
	BiomarkerRespRate:      "brpm",
	BiomarkerWalkingHR:     "bpm",
	BiomarkerSpO2:          "%",
	BiomarkerSleepDuration: "min",
	BiomarkerDeepSleep:     "min",
	BiomarkerREMSleep:      "min",
	BiomarkerBedtime:       "sec",
	BiomarkerWakeTime:      "sec",
}

// AllBiomarkers returns all valid biomarkers.
var AllBiomarkers = []Biomarker{
	BiomarkerHRV, BiomarkerRHR, BiomarkerRespRate, BiomarkerWalkingHR, BiomarkerSpO2,
	BiomarkerSleepDuration, BiomarkerDeepSleep, BiomarkerREMSleep,
	BiomarkerBedtime, BiomarkerWakeTime,
}

// TrendBiomarkers is the subset plotted as short-term trend series.
// Time-of-day biomarkers are excluded; a seconds-from-midnight trend line
// is not meaningful to chart alongside the physiological ones.
var TrendBiomarkers = []Biomarker{
	BiomarkerHRV, BiomarkerRHR, BiomarkerRespRate, BiomarkerWalkingHR,
	BiomarkerSpO2, BiomarkerSleepDuration, BiomarkerDeepSleep,
}

// IsValidBiomarker checks if a string is a valid biomarker.
func IsValidBiomarker(s string) bool {
	for _, b := range AllBiomarkers {
		if string(b) == s {
			return true
		}
	}
	return false
}
