// ABOUTME: Daily raw metrics operations for SQLite storage.
// ABOUTME: Implements the MetricsSource interface plus ingestion helpers.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/vitality/internal/models"
)

// UpsertDailyMetrics stores or replaces one day's raw readings.
// The row is keyed by calendar day; a second upsert for the same day
// replaces the previous readings wholesale.
func (d *DB) UpsertDailyMetrics(m *models.DailyMetrics) error {
	query := `
		INSERT INTO daily_metrics (
			date, hrv, resting_heart_rate, respiratory_rate, walking_heart_rate,
			oxygen_saturation, sleep_duration, time_in_bed, deep_sleep, rem_sleep,
			awake_time, onset_latency, bedtime, wake_time
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			hrv = excluded.hrv,
			resting_heart_rate = excluded.resting_heart_rate,
			respiratory_rate = excluded.respiratory_rate,
			walking_heart_rate = excluded.walking_heart_rate,
			oxygen_saturation = excluded.oxygen_saturation,
			sleep_duration = excluded.sleep_duration,
			time_in_bed = excluded.time_in_bed,
			deep_sleep = excluded.deep_sleep,
			rem_sleep = excluded.rem_sleep,
			awake_time = excluded.awake_time,
			onset_latency = excluded.onset_latency,
			bedtime = excluded.bedtime,
			wake_time = excluded.wake_time
	`
	_, err := d.db.Exec(query,
		models.DayKey(m.Date),
		m.HRV, m.RestingHeartRate, m.RespiratoryRate, m.WalkingHeartRate,
		m.OxygenSaturation, m.SleepDuration, m.TimeInBed, m.DeepSleep, m.REMSleep,
		m.AwakeTime, m.OnsetLatency,
		formatTimePtr(m.Bedtime), formatTimePtr(m.WakeTime),
	)
	if err != nil {
		return fmt.Errorf("upsert daily metrics: %w", err)
	}
	return nil
}

// FetchDailyMetrics returns one day's raw readings, or nil when the day
// has no row.
func (d *DB) FetchDailyMetrics(date time.Time) (*models.DailyMetrics, error) {
	query := `
		SELECT date, hrv, resting_heart_rate, respiratory_rate, walking_heart_rate,
		       oxygen_saturation, sleep_duration, time_in_bed, deep_sleep, rem_sleep,
		       awake_time, onset_latency, bedtime, wake_time
		FROM daily_metrics
		WHERE date = ?
	`
	m, err := d.scanDailyMetrics(d.db.QueryRow(query, models.DayKey(date)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch daily metrics: %w", err)
	}
	return m, nil
}

// FetchSeriesValue returns a single biomarker reading for a day, or nil
// when the day or the reading is absent.
func (d *DB) FetchSeriesValue(b models.Biomarker, date time.Time) (*float64, error) {
	m, err := d.FetchDailyMetrics(date)
	if err != nil {
		return nil, err
	}
	return m.Value(b), nil
}

// ListDailyMetrics retrieves raw metric days, most recent first.
func (d *DB) ListDailyMetrics(limit int) ([]*models.DailyMetrics, error) {
	query := `
		SELECT date, hrv, resting_heart_rate, respiratory_rate, walking_heart_rate,
		       oxygen_saturation, sleep_duration, time_in_bed, deep_sleep, rem_sleep,
		       awake_time, onset_latency, bedtime, wake_time
		FROM daily_metrics
		ORDER BY date DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list daily metrics: %w", err)
	}
	defer rows.Close()

	var days []*models.DailyMetrics
	for rows.Next() {
		m, err := d.scanDailyMetrics(rows)
		if err != nil {
			return nil, fmt.Errorf("list daily metrics: %w", err)
		}
		days = append(days, m)
	}
	return days, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDailyMetrics scans one daily_metrics row.
func (d *DB) scanDailyMetrics(row rowScanner) (*models.DailyMetrics, error) {
	var m models.DailyMetrics
	var dateStr string
	var hrv, rhr, resp, whr, spo2 sql.NullFloat64
	var dur, tib, deep, rem, awake, onset sql.NullFloat64
	var bedtime, wake sql.NullString

	err := row.Scan(&dateStr, &hrv, &rhr, &resp, &whr, &spo2,
		&dur, &tib, &deep, &rem, &awake, &onset, &bedtime, &wake)
	if err != nil {
		return nil, err
	}

	m.Date, _ = time.ParseInLocation("2006-01-02", dateStr, time.Local)
	m.HRV = nullToPtr(hrv)
	m.RestingHeartRate = nullToPtr(rhr)
	m.RespiratoryRate = nullToPtr(resp)
	m.WalkingHeartRate = nullToPtr(whr)
	m.OxygenSaturation = nullToPtr(spo2)
	m.SleepDuration = nullToPtr(dur)
	m.TimeInBed = nullToPtr(tib)
	m.DeepSleep = nullToPtr(deep)
	m.REMSleep = nullToPtr(rem)
	m.AwakeTime = nullToPtr(awake)
	m.OnsetLatency = nullToPtr(onset)
	m.Bedtime = parseTimePtr(bedtime)
	m.WakeTime = parseTimePtr(wake)

	return &m, nil
}

func nullToPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func parseTimePtr(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
