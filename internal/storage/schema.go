// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for daily raw metrics and the score history.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_metrics (
		date TEXT PRIMARY KEY,
		hrv REAL,
		resting_heart_rate REAL,
		respiratory_rate REAL,
		walking_heart_rate REAL,
		oxygen_saturation REAL,
		sleep_duration REAL,
		time_in_bed REAL,
		deep_sleep REAL,
		rem_sleep REAL,
		awake_time REAL,
		onset_latency REAL,
		bedtime DATETIME,
		wake_time DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS score_history (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		score_type TEXT NOT NULL,
		final_score INTEGER NOT NULL,
		baseline TEXT NOT NULL,
		calculated_at DATETIME NOT NULL,
		UNIQUE(date, score_type)
	);

	CREATE INDEX IF NOT EXISTS idx_score_history_type_date ON score_history(score_type, date);
	`

	_, err := d.db.Exec(schema)
	return err
}
