// ABOUTME: Tests for the MCP tool handlers.
// ABOUTME: Exercises score dispatch, cache refresh, and date validation.
package mcp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/vitality/internal/hub"
	"github.com/harperreed/vitality/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource is a fixture metrics source that counts fetches.
type countingSource struct {
	mu    sync.Mutex
	days  map[string]*models.DailyMetrics
	calls int
}

func (s *countingSource) FetchDailyMetrics(date time.Time) (*models.DailyMetrics, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.days[models.DayKey(date)], nil
}

func (s *countingSource) FetchSeriesValue(b models.Biomarker, date time.Time) (*float64, error) {
	m, err := s.FetchDailyMetrics(date)
	if err != nil {
		return nil, err
	}
	return m.Value(b), nil
}

func (s *countingSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func f(v float64) *float64 { return &v }

func testDay() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
}

func sourceWithData() *countingSource {
	date := testDay()
	days := map[string]*models.DailyMetrics{}
	for i := 0; i <= 3; i++ {
		d := date.AddDate(0, 0, -i)
		m := models.NewDailyMetrics(d)
		m.HRV = f(48)
		m.RestingHeartRate = f(52)
		m.SleepDuration = f(450)
		m.TimeInBed = f(500)
		m.DeepSleep = f(80)
		days[models.DayKey(d)] = m
	}
	return &countingSource{days: days}
}

func newTestServer(t *testing.T, source *countingSource) *Server {
	t.Helper()
	h := hub.New(source, nil, hub.WithLookbackDays(3), hub.WithTrendDays(2))
	s, err := NewServer(h, nil)
	require.NoError(t, err)
	return s
}

func TestScoreToolComputesScore(t *testing.T) {
	s := newTestServer(t, sourceWithData())

	_, out, err := s.handleGetRecoveryScore(context.Background(), nil, dateInput{Date: "2025-06-15"})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-15", out.Date)
	assert.Equal(t, string(models.ScoreTypeRecovery), out.ScoreType)
	assert.Greater(t, out.FinalScore, 0)
	assert.NotEmpty(t, out.Components)
}

func TestScoreToolReportsNoData(t *testing.T) {
	s := newTestServer(t, &countingSource{days: map[string]*models.DailyMetrics{}})

	_, out, err := s.handleGetSleepScore(context.Background(), nil, dateInput{Date: "2025-06-15"})
	require.NoError(t, err)

	assert.Equal(t, 0, out.FinalScore)
	assert.NotEmpty(t, out.Message)
}

func TestRefreshScoresToolRecomputes(t *testing.T) {
	source := sourceWithData()
	s := newTestServer(t, source)

	// Warm the cache, then refresh: the cached entry must be evicted and
	// the full pipeline re-run against the source.
	_, _, err := s.handleGetRecoveryScore(context.Background(), nil, dateInput{Date: "2025-06-15"})
	require.NoError(t, err)
	after := source.callCount()

	_, out, err := s.handleRefreshScores(context.Background(), nil, dateInput{Date: "2025-06-15"})
	require.NoError(t, err)

	assert.Equal(t, "Recomputed scores for 2025-06-15", out.Message)
	assert.Greater(t, source.callCount(), after, "refresh must bypass the cache")
}

func TestRefreshScoresToolRejectsBadDate(t *testing.T) {
	s := newTestServer(t, sourceWithData())

	_, _, err := s.handleRefreshScores(context.Background(), nil, dateInput{Date: "junk"})
	assert.Error(t, err)
}
