// ABOUTME: MCP tool implementations for the vitality scoring pipeline.
// ABOUTME: Exposes score computation, trends, history, and raw metric ingestion.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/vitality/internal/models"
	"github.com/harperreed/vitality/internal/scoring"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// get_recovery_score
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_recovery_score",
		Description: "Compute the 0-100 recovery score and breakdown for a date",
	}, s.handleGetRecoveryScore)

	// get_sleep_score
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_sleep_score",
		Description: "Compute the 0-100 sleep score and breakdown for a date",
	}, s.handleGetSleepScore)

	// get_trends
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_trends",
		Description: "Get short-term trend series for each biomarker",
	}, s.handleGetTrends)

	// get_score_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_score_history",
		Description: "List persisted scores for a date range",
	}, s.handleGetScoreHistory)

	// save_scores
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_scores",
		Description: "Persist a date's computed scores with their baseline snapshot",
	}, s.handleSaveScores)

	// record_metrics
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_metrics",
		Description: "Record raw biomarker readings for a calendar day",
	}, s.handleRecordMetrics)

	// refresh_scores
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "refresh_scores",
		Description: "Evict a date's cached scores and recompute them",
	}, s.handleRefreshScores)

	// clear_cache
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Drop all cached score computations",
	}, s.handleClearCache)
}

// Tool input/output types

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Calendar day (YYYY-MM-DD); defaults to today"`
}

type scoreOutput struct {
	Date       string                  `json:"date"`
	ScoreType  string                  `json:"score_type"`
	FinalScore int                     `json:"final_score"`
	Components []models.ComponentScore `json:"components"`
	Message    string                  `json:"message,omitempty"`
}

type trendsInput struct {
	Date string `json:"date,omitempty" jsonschema:"Window end day (YYYY-MM-DD); defaults to today"`
	Days int    `json:"days,omitempty" jsonschema:"Window length in days (default 7)"`
}

type historyInput struct {
	Start     string `json:"start" jsonschema:"Range start day (YYYY-MM-DD)"`
	End       string `json:"end" jsonschema:"Range end day (YYYY-MM-DD)"`
	ScoreType string `json:"score_type" jsonschema:"Score type (recovery or sleep)"`
}

type recordMetricsInput struct {
	Date             string   `json:"date" jsonschema:"Calendar day (YYYY-MM-DD)"`
	HRV              *float64 `json:"hrv,omitempty" jsonschema:"Heart rate variability in ms"`
	RestingHeartRate *float64 `json:"resting_heart_rate,omitempty" jsonschema:"Resting heart rate in bpm"`
	RespiratoryRate  *float64 `json:"respiratory_rate,omitempty" jsonschema:"Respiratory rate in breaths/min"`
	WalkingHeartRate *float64 `json:"walking_heart_rate,omitempty" jsonschema:"Walking heart rate in bpm"`
	OxygenSaturation *float64 `json:"oxygen_saturation,omitempty" jsonschema:"Blood oxygen saturation in %"`
	SleepDuration    *float64 `json:"sleep_duration,omitempty" jsonschema:"Minutes asleep"`
	TimeInBed        *float64 `json:"time_in_bed,omitempty" jsonschema:"Minutes in bed"`
	DeepSleep        *float64 `json:"deep_sleep,omitempty" jsonschema:"Minutes of deep sleep"`
	REMSleep         *float64 `json:"rem_sleep,omitempty" jsonschema:"Minutes of REM sleep"`
	AwakeTime        *float64 `json:"awake_time,omitempty" jsonschema:"Minutes awake during the session"`
	OnsetLatency     *float64 `json:"onset_latency,omitempty" jsonschema:"Minutes to fall asleep"`
	Bedtime          string   `json:"bedtime,omitempty" jsonschema:"Bedtime (ISO 8601)"`
	WakeTime         string   `json:"wake_time,omitempty" jsonschema:"Wake time (ISO 8601)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// Tool handlers

func (s *Server) handleGetRecoveryScore(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, scoreOutput, error) {
	return s.handleScore(ctx, input, models.ScoreTypeRecovery)
}

func (s *Server) handleGetSleepScore(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, scoreOutput, error) {
	return s.handleScore(ctx, input, models.ScoreTypeSleep)
}

func (s *Server) handleScore(ctx context.Context, input dateInput, scoreType models.ScoreType) (*mcp.CallToolResult, scoreOutput, error) {
	calc := scoring.ForType(scoreType)
	if calc == nil {
		return nil, scoreOutput{}, fmt.Errorf("unknown score type: %s", scoreType)
	}
	date, err := parseDay(input.Date)
	if err != nil {
		return nil, scoreOutput{}, err
	}

	entry, err := s.hub.LoadData(ctx, date)
	if err != nil {
		return nil, scoreOutput{}, fmt.Errorf("failed to load scores: %w", err)
	}

	// Calculators are pure: the cached raw metrics and baseline reproduce
	// the entry's stored result.
	result := calc.Calculate(entry.Date, entry.Raw, entry.Baseline)
	if result == nil {
		return nil, scoreOutput{
			Date:      models.DayKey(date),
			ScoreType: string(scoreType),
			Message:   fmt.Sprintf("No %s data recorded for %s.", scoreType, models.DayKey(date)),
		}, nil
	}

	return nil, scoreOutput{
		Date:       models.DayKey(date),
		ScoreType:  string(scoreType),
		FinalScore: result.FinalScore,
		Components: result.Components,
	}, nil
}

func (s *Server) handleGetTrends(ctx context.Context, req *mcp.CallToolRequest, input trendsInput) (*mcp.CallToolResult, any, error) {
	date, err := parseDay(input.Date)
	if err != nil {
		return nil, nil, err
	}

	entry, err := s.hub.LoadData(ctx, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load trends: %w", err)
	}
	if len(entry.Trends) == 0 {
		return nil, map[string]interface{}{"message": "No trend data available."}, nil
	}

	return nil, entry.Trends, nil
}

func (s *Server) handleGetScoreHistory(ctx context.Context, req *mcp.CallToolRequest, input historyInput) (*mcp.CallToolResult, any, error) {
	if !models.IsValidScoreType(input.ScoreType) {
		return nil, nil, fmt.Errorf("unknown score type: %s", input.ScoreType)
	}
	start, err := parseDay(input.Start)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDay(input.End)
	if err != nil {
		return nil, nil, err
	}

	scores, err := s.repo.GetScoreRange(start, end, models.ScoreType(input.ScoreType))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list scores: %w", err)
	}
	if len(scores) == 0 {
		return nil, map[string]interface{}{"message": "No persisted scores in range."}, nil
	}

	return nil, scores, nil
}

func (s *Server) handleSaveScores(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, simpleOutput, error) {
	date, err := parseDay(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	entry, err := s.hub.LoadData(ctx, date)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to load scores: %w", err)
	}
	if err := s.hub.SaveScores(entry); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save scores: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Saved scores for %s", models.DayKey(date)),
	}, nil
}

func (s *Server) handleRecordMetrics(ctx context.Context, req *mcp.CallToolRequest, input recordMetricsInput) (*mcp.CallToolResult, simpleOutput, error) {
	date, err := parseDay(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	m := models.NewDailyMetrics(date)
	m.HRV = input.HRV
	m.RestingHeartRate = input.RestingHeartRate
	m.RespiratoryRate = input.RespiratoryRate
	m.WalkingHeartRate = input.WalkingHeartRate
	m.OxygenSaturation = input.OxygenSaturation
	m.SleepDuration = input.SleepDuration
	m.TimeInBed = input.TimeInBed
	m.DeepSleep = input.DeepSleep
	m.REMSleep = input.REMSleep
	m.AwakeTime = input.AwakeTime
	m.OnsetLatency = input.OnsetLatency
	if input.Bedtime != "" {
		if t, err := time.Parse(time.RFC3339, input.Bedtime); err == nil {
			m.Bedtime = &t
		}
	}
	if input.WakeTime != "" {
		if t, err := time.Parse(time.RFC3339, input.WakeTime); err == nil {
			m.WakeTime = &t
		}
	}

	if err := s.repo.UpsertDailyMetrics(m); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to record metrics: %w", err)
	}

	// Recorded data invalidates anything computed from the old readings.
	s.hub.ClearCache()

	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded metrics for %s", models.DayKey(date)),
	}, nil
}

func (s *Server) handleRefreshScores(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, simpleOutput, error) {
	date, err := parseDay(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	s.hub.SetDisplayedDate(date)
	if _, err := s.hub.Refresh(ctx); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to refresh scores: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Recomputed scores for %s", models.DayKey(date)),
	}, nil
}

func (s *Server) handleClearCache(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	s.hub.ClearCache()
	return nil, simpleOutput{Message: "Cache cleared."}, nil
}
