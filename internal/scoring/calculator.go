// ABOUTME: Calculator interface and score-type dispatch for composite scores.
// ABOUTME: A small closed set of calculators selected by ScoreType, not subclassing.
package scoring

import (
	"time"

	"github.com/harperreed/vitality/internal/models"
)

// Calculator combines weighted component scorers into one composite score.
// Calculators are pure: they read only the metrics and baseline they are
// handed, perform no I/O, and persist nothing. A nil result means the date
// has no underlying data for this score type; callers render that as an
// explicit empty state, not an error.
type Calculator interface {
	Type() models.ScoreType
	Calculate(date time.Time, m *models.DailyMetrics, baseline models.BaselineSnapshot) *models.CompositeScoreResult
}

// ForType returns the calculator for a score type, or nil for an unknown one.
func ForType(t models.ScoreType) Calculator {
	switch t {
	case models.ScoreTypeRecovery:
		return RecoveryCalculator{}
	case models.ScoreTypeSleep:
		return SleepCalculator{}
	}
	return nil
}

// All returns every calculator the pipeline runs.
func All() []Calculator {
	return []Calculator{RecoveryCalculator{}, SleepCalculator{}}
}
