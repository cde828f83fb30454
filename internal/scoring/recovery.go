// ABOUTME: Recovery composite calculator: HRV, RHR, sleep, and strain components.
// ABOUTME: Point allocations sum to 100; HRV carries half the weight.
package scoring

import (
	"time"

	"github.com/harperreed/vitality/internal/models"
)

// Recovery point allocations.
const (
	recoveryHRVPoints    = 50.0
	recoveryRHRPoints    = 25.0
	recoverySleepPoints  = 15.0
	recoveryStrainPoints = 10.0
)

// Recovery calibration. Defaults apply when a biomarker has no personal
// baseline yet (fewer than the minimum valid samples in the lookback window).
const (
	hrvSigma       = 15.0 // ms
	hrvDefaultMean = 50.0 // ms

	rhrSigma       = 5.0  // bpm
	rhrDefaultMean = 60.0 // bpm

	respSigma       = 2.0  // breaths/min
	respDefaultMean = 14.0 // breaths/min

	sleepIdealMinHours = 7.0
	sleepIdealMaxHours = 9.0
)

// RecoveryCalculator scores how recovered the body is relative to its own
// rolling baselines.
type RecoveryCalculator struct{}

func (RecoveryCalculator) Type() models.ScoreType { return models.ScoreTypeRecovery }

// Calculate derives the recovery score for a date. Returns nil when the day
// has no recovery biomarker data at all.
func (RecoveryCalculator) Calculate(date time.Time, m *models.DailyMetrics, baseline models.BaselineSnapshot) *models.CompositeScoreResult {
	if !m.HasRecoveryData() {
		return nil
	}

	components := []models.ComponentScore{
		hrvComponent(m, baseline),
		rhrComponent(m, baseline),
		recoverySleepComponent(m),
		strainComponent(m, baseline),
	}
	return models.NewCompositeScoreResult(date, models.ScoreTypeRecovery, components)
}

// hrvComponent scores HRV against the personal baseline mean. Higher or
// lower than baseline both indicate a shifted autonomic state, so the
// curve is symmetric.
func hrvComponent(m *models.DailyMetrics, baseline models.BaselineSnapshot) models.ComponentScore {
	c := models.ComponentScore{
		Name:        "HRV",
		MaxPoints:   recoveryHRVPoints,
		Description: "Heart rate variability vs. personal baseline",
	}
	if m.HRV == nil {
		return c
	}
	optimal, ok := baseline.Mean(models.BiomarkerHRV)
	if !ok {
		optimal = hrvDefaultMean
	}
	c.RawValue = m.HRV
	c.Score = GaussianScore(*m.HRV, optimal, hrvSigma)
	return c
}

func rhrComponent(m *models.DailyMetrics, baseline models.BaselineSnapshot) models.ComponentScore {
	c := models.ComponentScore{
		Name:        "Resting HR",
		MaxPoints:   recoveryRHRPoints,
		Description: "Resting heart rate vs. personal baseline",
	}
	if m.RestingHeartRate == nil {
		return c
	}
	optimal, ok := baseline.Mean(models.BiomarkerRHR)
	if !ok {
		optimal = rhrDefaultMean
	}
	c.RawValue = m.RestingHeartRate
	c.Score = GaussianScore(*m.RestingHeartRate, optimal, rhrSigma)
	return c
}

// recoverySleepComponent folds last night's sleep duration into recovery.
func recoverySleepComponent(m *models.DailyMetrics) models.ComponentScore {
	c := models.ComponentScore{
		Name:        "Sleep",
		MaxPoints:   recoverySleepPoints,
		Description: "Last night's sleep duration",
	}
	if m.SleepDuration == nil {
		return c
	}
	hours := *m.SleepDuration / 60
	c.RawValue = m.SleepDuration
	c.Score = RangeNormalizeScore(hours, sleepIdealMinHours, sleepIdealMaxHours)
	return c
}

// strainComponent uses respiratory rate deviation as a physiological
// stress proxy.
func strainComponent(m *models.DailyMetrics, baseline models.BaselineSnapshot) models.ComponentScore {
	c := models.ComponentScore{
		Name:        "Strain",
		MaxPoints:   recoveryStrainPoints,
		Description: "Respiratory rate vs. personal baseline",
	}
	if m.RespiratoryRate == nil {
		return c
	}
	optimal, ok := baseline.Mean(models.BiomarkerRespRate)
	if !ok {
		optimal = respDefaultMean
	}
	c.RawValue = m.RespiratoryRate
	c.Score = GaussianScore(*m.RespiratoryRate, optimal, respSigma)
	return c
}
