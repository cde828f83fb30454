// ABOUTME: DailyMetrics model bundling one calendar day of raw biomarker readings.
// ABOUTME: Fields are optional pointers; a nil field means the day has no reading.
package models

import "time"

// DailyMetrics is an immutable per-date bundle of raw biomarker readings.
// It is fetched fresh from the metrics source on every pipeline run and
// never mutated after construction.
type DailyMetrics struct {
	Date time.Time `json:"date"`

	// Recovery biomarkers
	HRV              *float64 `json:"hrv,omitempty"`               // ms
	RestingHeartRate *float64 `json:"resting_heart_rate,omitempty"` // bpm
	RespiratoryRate  *float64 `json:"respiratory_rate,omitempty"`  // breaths/min
	WalkingHeartRate *float64 `json:"walking_heart_rate,omitempty"` // bpm
	OxygenSaturation *float64 `json:"oxygen_saturation,omitempty"` // %

	// Sleep session
	SleepDuration *float64   `json:"sleep_duration,omitempty"` // minutes asleep
	TimeInBed     *float64   `json:"time_in_bed,omitempty"`    // minutes
	DeepSleep     *float64   `json:"deep_sleep,omitempty"`     // minutes
	REMSleep      *float64   `json:"rem_sleep,omitempty"`      // minutes
	AwakeTime     *float64   `json:"awake_time,omitempty"`     // minutes awake in session
	OnsetLatency  *float64   `json:"onset_latency,omitempty"`  // minutes to fall asleep
	Bedtime       *time.Time `json:"bedtime,omitempty"`
	WakeTime      *time.Time `json:"wake_time,omitempty"`
}

// NewDailyMetrics creates an empty metrics bundle for a calendar day.
func NewDailyMetrics(date time.Time) *DailyMetrics {
	return &DailyMetrics{Date: date}
}

// HasSleepSession reports whether the day has any recorded sleep data.
func (m *DailyMetrics) HasSleepSession() bool {
	return m != nil && (m.SleepDuration != nil || m.TimeInBed != nil)
}

// HasRecoveryData reports whether the day has any recovery biomarker reading.
func (m *DailyMetrics) HasRecoveryData() bool {
	return m != nil && (m.HRV != nil || m.RestingHeartRate != nil ||
		m.RespiratoryRate != nil || m.WalkingHeartRate != nil || m.OxygenSaturation != nil)
}

// Value returns the reading for a biomarker, or nil when absent.
// Time-of-day biomarkers (bedtime, wake_time) are reported as
// seconds from midnight so they can be averaged like any other value.
func (m *DailyMetrics) Value(b Biomarker) *float64 {
	if m == nil {
		return nil
	}
	switch b {
	case BiomarkerHRV:
		return m.HRV
	case BiomarkerRHR:
		return m.RestingHeartRate
	case BiomarkerRespRate:
		return m.RespiratoryRate
	case BiomarkerWalkingHR:
		return m.WalkingHeartRate
	case BiomarkerSpO2:
		return m.OxygenSaturation
	case BiomarkerSleepDuration:
		return m.SleepDuration
	case BiomarkerDeepSleep:
		return m.DeepSleep
	case BiomarkerREMSleep:
		return m.REMSleep
	case BiomarkerBedtime:
		return secondsFromMidnight(m.Bedtime)
	case BiomarkerWakeTime:
		return secondsFromMidnight(m.WakeTime)
	}
	return nil
}

func secondsFromMidnight(t *time.Time) *float64 {
	if t == nil {
		return nil
	}
	s := float64(t.Hour()*3600 + t.Minute()*60 + t.Second())
	return &s
}

// DayKey formats a time as the calendar-day cache key, using the
// local timezone of the timestamp.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
