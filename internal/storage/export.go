// ABOUTME: Export and import functionality for vitality data.
// ABOUTME: Supports JSON and YAML export of raw metric days and score history.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/vitality/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for vitality data.
type ExportData struct {
	Version    string                   `json:"version" yaml:"version"`
	ExportedAt time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool       string                   `json:"tool" yaml:"tool"`
	Metrics    []*models.DailyMetrics   `json:"metrics" yaml:"metrics"`
	Scores     []*models.PersistedScore `json:"scores" yaml:"scores"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	metrics, err := d.ListDailyMetrics(0)
	if err != nil {
		return nil, fmt.Errorf("list daily metrics: %w", err)
	}

	var scores []*models.PersistedScore
	for _, st := range models.AllScoreTypes {
		s, err := d.GetScoreRange(time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC), st)
		if err != nil {
			return nil, fmt.Errorf("list %s scores: %w", st, err)
		}
		scores = append(scores, s...)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "vitality",
		Metrics:    metrics,
		Scores:     scores,
	}, nil
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	for _, m := range data.Metrics {
		if err := d.UpsertDailyMetrics(m); err != nil {
			return fmt.Errorf("import daily metrics: %w", err)
		}
	}
	for _, s := range data.Scores {
		if err := d.UpsertScore(s); err != nil {
			return fmt.Errorf("import score: %w", err)
		}
	}
	return nil
}

// ToJSON serializes export data as indented JSON.
func (e *ExportData) ToJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// ToYAML serializes export data as YAML.
func (e *ExportData) ToYAML() ([]byte, error) {
	return yaml.Marshal(e)
}

// ParseExport parses a JSON export file.
func ParseExport(data []byte) (*ExportData, error) {
	var e ExportData
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return &e, nil
}
