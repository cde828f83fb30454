// ABOUTME: Storage interfaces consumed by the scoring pipeline.
// ABOUTME: Defines contracts for the raw metrics source and score history store.
package storage

import (
	"time"

	"github.com/harperreed/vitality/internal/models"
)

// MetricsSource is the raw metrics boundary of the pipeline. The baseline
// engine, trend aggregator, and hub depend on this interface so tests can
// substitute fixture implementations.
type MetricsSource interface {
	// FetchDailyMetrics returns one day's raw readings, or nil when the
	// day has no data. A nil result is a valid empty state, not an error.
	FetchDailyMetrics(date time.Time) (*models.DailyMetrics, error)

	// FetchSeriesValue returns a single biomarker reading for a day,
	// or nil when absent.
	FetchSeriesValue(b models.Biomarker, date time.Time) (*float64, error)
}

// ScoreStore is the durable score history boundary.
type ScoreStore interface {
	UpsertScore(s *models.PersistedScore) error
	GetScore(date time.Time, scoreType models.ScoreType) (*models.PersistedScore, error)
	GetScoreRange(start, end time.Time, scoreType models.ScoreType) ([]*models.PersistedScore, error)
	DeleteScore(date time.Time, scoreType models.ScoreType) error
}

// Repository is the full storage contract: raw metrics substrate plus
// score history. *DB implements it; alternate backends can too.
type Repository interface {
	MetricsSource
	ScoreStore

	// Raw metric ingestion
	UpsertDailyMetrics(m *models.DailyMetrics) error
	ListDailyMetrics(limit int) ([]*models.DailyMetrics, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
