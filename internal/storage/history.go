// ABOUTME: Score history operations for SQLite storage.
// ABOUTME: Implements idempotent upsert keyed by (date, score_type) plus range queries.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitality/internal/models"
)

// UpsertScore atomically replaces or inserts a persisted score. At most one
// row exists per (date, score_type); a second upsert for the same key
// replaces the first. Transient store failures are retried once before
// being surfaced.
func (d *DB) UpsertScore(s *models.PersistedScore) error {
	err := d.upsertScoreOnce(s)
	if err != nil {
		// One retry for transient failures (e.g. a busy WAL lock).
		err = d.upsertScoreOnce(s)
	}
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

func (d *DB) upsertScoreOnce(s *models.PersistedScore) error {
	return execUpsertScore(d.db, s)
}

// execer covers *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func execUpsertScore(e execer, s *models.PersistedScore) error {
	baseline, err := json.Marshal(s.Baseline)
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}

	query := `
		INSERT INTO score_history (id, date, score_type, final_score, baseline, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, score_type) DO UPDATE SET
			final_score = excluded.final_score,
			baseline = excluded.baseline,
			calculated_at = excluded.calculated_at
	`
	_, err = e.Exec(query,
		s.ID.String(),
		models.DayKey(s.Date),
		string(s.ScoreType),
		s.FinalScore,
		string(baseline),
		s.CalculatedAt.Format(time.RFC3339),
	)
	return err
}

// GetScore retrieves one persisted score, or nil when no row exists.
func (d *DB) GetScore(date time.Time, scoreType models.ScoreType) (*models.PersistedScore, error) {
	query := `
		SELECT id, date, score_type, final_score, baseline, calculated_at
		FROM score_history
		WHERE date = ? AND score_type = ?
	`
	s, err := d.scanScore(d.db.QueryRow(query, models.DayKey(date), string(scoreType)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get score: %w", err)
	}
	return s, nil
}

// GetScoreRange retrieves persisted scores in [start, end], ascending by date.
func (d *DB) GetScoreRange(start, end time.Time, scoreType models.ScoreType) ([]*models.PersistedScore, error) {
	query := `
		SELECT id, date, score_type, final_score, baseline, calculated_at
		FROM score_history
		WHERE score_type = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`
	rows, err := d.db.Query(query, string(scoreType), models.DayKey(start), models.DayKey(end))
	if err != nil {
		return nil, fmt.Errorf("get score range: %w", err)
	}
	defer rows.Close()

	var scores []*models.PersistedScore
	for rows.Next() {
		s, err := d.scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("get score range: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

// DeleteScore removes one persisted score.
func (d *DB) DeleteScore(date time.Time, scoreType models.ScoreType) error {
	result, err := d.db.Exec(
		"DELETE FROM score_history WHERE date = ? AND score_type = ?",
		models.DayKey(date), string(scoreType),
	)
	if err != nil {
		return fmt.Errorf("delete score: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s %s", models.DayKey(date), scoreType)
	}
	return nil
}

// CountScores returns the number of persisted score rows.
func (d *DB) CountScores() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM score_history").Scan(&n); err != nil {
		return 0, fmt.Errorf("count scores: %w", err)
	}
	return n, nil
}

// scanScore scans a single score_history row.
func (d *DB) scanScore(row rowScanner) (*models.PersistedScore, error) {
	var s models.PersistedScore
	var idStr, dateStr, scoreType, baseline, calculatedAt string

	err := row.Scan(&idStr, &dateStr, &scoreType, &s.FinalScore, &baseline, &calculatedAt)
	if err != nil {
		return nil, err
	}

	s.ID, _ = uuid.Parse(idStr)
	s.Date, _ = time.ParseInLocation("2006-01-02", dateStr, time.Local)
	s.ScoreType = models.ScoreType(scoreType)
	s.CalculatedAt, _ = time.Parse(time.RFC3339, calculatedAt)
	if err := json.Unmarshal([]byte(baseline), &s.Baseline); err != nil {
		return nil, fmt.Errorf("unmarshal baseline: %w", err)
	}

	return &s, nil
}
