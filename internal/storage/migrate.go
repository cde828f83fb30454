// ABOUTME: One-time migration from the legacy flat-file score export.
// ABOUTME: Imports a JSON array of scores, then renames the file so it never re-runs.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/vitality/internal/models"
)

// legacyScore is one entry of the legacy flat-file export format.
type legacyScore struct {
	Date             string                  `json:"date"`
	ScoreType        string                  `json:"scoreType"`
	Score            int                     `json:"score"`
	BaselineSnapshot models.BaselineSnapshot `json:"baselineSnapshot"`
	CalculatedAt     time.Time               `json:"calculatedAt"`
}

// MigrateSummary holds counts of migrated entries.
type MigrateSummary struct {
	Imported int
	Skipped  int
}

// MigrateLegacyScores imports the legacy flat-file score export exactly once.
// It runs only when the structured store is empty and the legacy file exists;
// after a successful import the file is renamed aside so the migration never
// re-runs. A corrupt legacy file is logged and skipped rather than blocking
// startup; individual corrupt entries are skipped and counted.
func (d *DB) MigrateLegacyScores(legacyPath string, logger *log.Logger) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	count, err := d.CountScores()
	if err != nil {
		return nil, fmt.Errorf("check score history: %w", err)
	}
	if count > 0 {
		return summary, nil
	}

	data, err := os.ReadFile(legacyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return summary, nil
		}
		return nil, fmt.Errorf("read legacy scores: %w", err)
	}

	var entries []legacyScore
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn("legacy score file is corrupt, skipping migration",
			"path", legacyPath, "err", err)
		return summary, nil
	}

	// The whole import commits or none of it does. A partial import would
	// leave the store non-empty, and the empty-store gate above would then
	// never retry the remaining entries.
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		date, err := time.ParseInLocation("2006-01-02", e.Date, time.Local)
		if err != nil || !models.IsValidScoreType(e.ScoreType) {
			logger.Warn("skipping corrupt legacy entry",
				"date", e.Date, "score_type", e.ScoreType)
			summary.Skipped++
			continue
		}

		s := &models.PersistedScore{
			ID:           uuid.New(),
			Date:         date,
			ScoreType:    models.ScoreType(e.ScoreType),
			FinalScore:   e.Score,
			Baseline:     e.BaselineSnapshot,
			CalculatedAt: e.CalculatedAt,
		}
		if err := execUpsertScore(tx, s); err != nil {
			return nil, fmt.Errorf("import legacy score %s/%s: %w", e.Date, e.ScoreType, err)
		}
		summary.Imported++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit migration: %w", err)
	}

	// Rename rather than delete so the original can still be recovered.
	if err := os.Rename(legacyPath, legacyPath+".migrated"); err != nil {
		logger.Warn("could not rename legacy score file", "path", legacyPath, "err", err)
	}

	logger.Info("migrated legacy scores",
		"imported", summary.Imported, "skipped", summary.Skipped)
	return summary, nil
}
