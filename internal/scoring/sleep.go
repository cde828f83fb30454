// ABOUTME: Sleep composite calculator: duration, efficiency, stages, quality, timing.
// ABOUTME: Six weighted components; stage scores use the step-then-range curve.
package scoring

import (
	"time"

	"github.com/harperreed/vitality/internal/models"
)

// Sleep point allocations.
const (
	sleepDurationPoints   = 30.0
	sleepEfficiencyPoints = 20.0
	sleepDeepPoints       = 15.0
	sleepREMPoints        = 15.0
	sleepQualityPoints    = 10.0
	sleepTimingPoints     = 10.0
)

// Sleep calibration.
const (
	efficiencyIdealMin = 85.0 // %
	efficiencyIdealMax = 95.0 // %

	stageFullCreditMin = 120.0 // minutes of deep or REM for automatic 100

	deepPctIdealMin = 13.0
	deepPctIdealMax = 23.0

	remPctIdealMin = 20.0
	remPctIdealMax = 25.0

	bedtimeSigma      = 3600.0  // seconds of drift from baseline bedtime
	bedtimeDefaultSec = 82800.0 // 23:00 when no baseline exists yet
)

// SleepCalculator scores last night's sleep session.
type SleepCalculator struct{}

func (SleepCalculator) Type() models.ScoreType { return models.ScoreTypeSleep }

// Calculate derives the sleep score for a date. Returns nil when the day
// has no recorded sleep session.
func (SleepCalculator) Calculate(date time.Time, m *models.DailyMetrics, baseline models.BaselineSnapshot) *models.CompositeScoreResult {
	if !m.HasSleepSession() {
		return nil
	}

	components := []models.ComponentScore{
		durationComponent(m),
		efficiencyComponent(m),
		stageComponent("Deep Sleep", sleepDeepPoints, m.DeepSleep, m.SleepDuration, deepPctIdealMin, deepPctIdealMax),
		stageComponent("REM Sleep", sleepREMPoints, m.REMSleep, m.SleepDuration, remPctIdealMin, remPctIdealMax),
		qualityComponent(m),
		timingComponent(m, baseline),
	}
	return models.NewCompositeScoreResult(date, models.ScoreTypeSleep, components)
}

func durationComponent(m *models.DailyMetrics) models.ComponentScore {
	c := models.ComponentScore{
		Name:        "Duration",
		MaxPoints:   sleepDurationPoints,
		Description: "Total time asleep",
	}
	if m.SleepDuration == nil {
		return c
	}
	hours := *m.SleepDuration / 60
	c.RawValue = m.SleepDuration
	c.Score = RangeNormalizeScore(hours, sleepIdealMinHours, sleepIdealMaxHours)
	return c
}

func efficiencyComponent(m *models.DailyMetrics) models.ComponentScore {
	c := models.ComponentScore{
		Name:        "Efficiency",
		MaxPoints:   sleepEfficiencyPoints,
		Description: "Time asleep as a share of time in bed",
	}
	if m.SleepDuration == nil || m.TimeInBed == nil || *m.TimeInBed <= 0 {
		return c
	}
	efficiency := *m.SleepDuration / *m.TimeInBed * 100
	c.RawValue = &efficiency
	c.Score = RangeNormalizeScore(efficiency, efficiencyIdealMin, efficiencyIdealMax)
	return c
}

// stageComponent scores a sleep stage: full credit past the absolute
// minutes threshold, otherwise the stage's share of total sleep against
// its ideal percentage band.
func stageComponent(name string, maxPoints float64, stage, total *float64, pctMin, pctMax float64) models.ComponentScore {
	c := models.ComponentScore{
		Name:        name,
		MaxPoints:   maxPoints,
		Description: "Stage minutes and share of total sleep",
	}
	if stage == nil || total == nil || *total <= 0 {
		return c
	}
	pct := *stage / *total * 100
	c.RawValue = stage
	c.Score = StepThenRangeScore(*stage, stageFullCreditMin, pct, pctMin, pctMax)
	return c
}

// qualityComponent scores how quickly sleep arrived, the restfulness proxy
// with the strongest signal in the source data.
func qualityComponent(m *models.DailyMetrics) models.ComponentScore {
	c := models.ComponentScore{
		Name:        "Quality",
		MaxPoints:   sleepQualityPoints,
		Description: "Sleep onset latency",
	}
	if m.OnsetLatency == nil {
		return c
	}
	c.RawValue = m.OnsetLatency
	c.Score = OnsetLatencyScore(*m.OnsetLatency)
	return c
}

// timingComponent scores bedtime consistency against the personal baseline
// bedtime, both expressed as seconds from midnight.
func timingComponent(m *models.DailyMetrics, baseline models.BaselineSnapshot) models.ComponentScore {
	c := models.ComponentScore{
		Name:        "Timing",
		MaxPoints:   sleepTimingPoints,
		Description: "Bedtime consistency vs. personal baseline",
	}
	bedtime := m.Value(models.BiomarkerBedtime)
	if bedtime == nil {
		return c
	}
	optimal, ok := baseline.Mean(models.BiomarkerBedtime)
	if !ok {
		optimal = bedtimeDefaultSec
	}
	c.RawValue = bedtime
	c.Score = GaussianScore(*bedtime, optimal, bedtimeSigma)
	return c
}
