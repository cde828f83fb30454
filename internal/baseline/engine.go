// ABOUTME: Rolling-baseline engine computing per-biomarker statistics.
// ABOUTME: Windows look strictly before the target date; thin data yields no baseline.
package baseline

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/vitality/internal/models"
	"github.com/harperreed/vitality/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLookbackDays is the standard rolling window.
	DefaultLookbackDays = 60

	// minValidSamples is the fewest days of data a biomarker needs before
	// a baseline is produced. Below this the baseline is absent rather
	// than a noisy average.
	minValidSamples = 3

	// fetchParallelism bounds concurrent per-day fetches. The source is
	// I/O bound; unbounded fan-out just thrashes it.
	fetchParallelism = 8
)

// Engine computes per-biomarker rolling baselines from a metrics source.
// The source is injected so the engine can be tested against fixtures.
type Engine struct {
	source storage.MetricsSource
}

// NewEngine creates a baseline engine over a metrics source.
func NewEngine(source storage.MetricsSource) *Engine {
	return &Engine{source: source}
}

// Calculate produces the baseline snapshot for a target date from up to
// lookbackDays of history strictly before that date. Missing days are
// dropped, never interpolated. Time-of-day biomarkers (bedtime, wake_time)
// are averaged as seconds from midnight.
func (e *Engine) Calculate(ctx context.Context, date time.Time, lookbackDays int) (models.BaselineSnapshot, error) {
	snapshot := models.BaselineSnapshot{
		Date:         date,
		LookbackDays: lookbackDays,
		Stats:        make(map[models.Biomarker]models.BaselineStat),
	}
	if lookbackDays <= 0 {
		return snapshot, nil
	}

	// One fetch per historical day; every biomarker is extracted from the
	// same bundle rather than fetched per-series.
	days := make([]*models.DailyMetrics, lookbackDays)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallelism)
	for i := 0; i < lookbackDays; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			day := date.AddDate(0, 0, -(i + 1))
			m, err := e.source.FetchDailyMetrics(day)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", models.DayKey(day), err)
			}
			days[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return snapshot, err
	}

	for _, b := range models.AllBiomarkers {
		var sum float64
		var count int
		for _, m := range days {
			if v := m.Value(b); v != nil {
				sum += *v
				count++
			}
		}
		if count < minValidSamples {
			continue
		}
		snapshot.Stats[b] = models.BaselineStat{
			Mean:        sum / float64(count),
			SampleCount: count,
		}
	}

	return snapshot, nil
}
