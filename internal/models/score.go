// ABOUTME: Score models: component breakdowns, composite results, persisted rows.
// ABOUTME: Defines the ScoreType enum for the recovery and sleep calculators.
package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ScoreType identifies which composite calculator produced a score.
type ScoreType string

const (
	ScoreTypeRecovery ScoreType = "recovery"
	ScoreTypeSleep    ScoreType = "sleep"
)

// AllScoreTypes returns all valid score types.
var AllScoreTypes = []ScoreType{ScoreTypeRecovery, ScoreTypeSleep}

// IsValidScoreType checks if a string is a valid score type.
func IsValidScoreType(s string) bool {
	for _, st := range AllScoreTypes {
		if string(st) == s {
			return true
		}
	}
	return false
}

// ComponentScore is one weighted sub-score in a composite breakdown.
// Score is the normalized 0-100 value; MaxPoints is the component's
// allocation out of the composite's 100 points.
type ComponentScore struct {
	Name        string   `json:"name"`
	RawValue    *float64 `json:"raw_value,omitempty"`
	Score       float64  `json:"score"`
	MaxPoints   float64  `json:"max_points"`
	Description string   `json:"description,omitempty"`
}

// Points returns the component's contribution to the composite score.
func (c ComponentScore) Points() float64 {
	return c.Score / 100 * c.MaxPoints
}

// CompositeScoreResult is the outcome of one composite calculation.
// Ephemeral unless explicitly persisted via the score history store.
type CompositeScoreResult struct {
	Date       time.Time        `json:"date"`
	ScoreType  ScoreType        `json:"score_type"`
	FinalScore int              `json:"final_score"`
	Components []ComponentScore `json:"components"`
	ComputedAt time.Time        `json:"computed_at"`
}

// NewCompositeScoreResult assembles a result from component scores,
// summing the weighted contributions, rounding, and clamping to [0,100].
func NewCompositeScoreResult(date time.Time, scoreType ScoreType, components []ComponentScore) *CompositeScoreResult {
	var total float64
	for _, c := range components {
		total += c.Points()
	}
	final := int(math.Round(total))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	return &CompositeScoreResult{
		Date:       date,
		ScoreType:  scoreType,
		FinalScore: final,
		Components: components,
		ComputedAt: time.Now(),
	}
}

// PersistedScore is a durably stored composite score with the baseline
// snapshot it was computed against. At most one row exists per
// (date, score_type); upserts replace, never duplicate.
type PersistedScore struct {
	ID           uuid.UUID        `json:"id"`
	Date         time.Time        `json:"date"`
	ScoreType    ScoreType        `json:"score_type"`
	FinalScore   int              `json:"final_score"`
	Baseline     BaselineSnapshot `json:"baseline_snapshot"`
	CalculatedAt time.Time        `json:"calculated_at"`
}

// NewPersistedScore builds a persisted row from a composite result and the
// baseline snapshot the calculation used.
func NewPersistedScore(result *CompositeScoreResult, baseline BaselineSnapshot) *PersistedScore {
	return &PersistedScore{
		ID:           uuid.New(),
		Date:         result.Date,
		ScoreType:    result.ScoreType,
		FinalScore:   result.FinalScore,
		Baseline:     baseline,
		CalculatedAt: time.Now(),
	}
}
