// ABOUTME: Trend aggregator producing ordered N-day value series per biomarker.
// ABOUTME: Batches per-day fetches with bounded parallelism; missing days zero-fill.
package trend

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/vitality/internal/models"
	"github.com/harperreed/vitality/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWindowDays is the standard trend window.
	DefaultWindowDays = 7

	// fetchParallelism bounds concurrent per-day fetches. A wide window
	// (90 days across 7 biomarkers) would otherwise issue hundreds of
	// sequential source reads.
	fetchParallelism = 8
)

// Aggregator derives short-term trend series from a metrics source.
type Aggregator struct {
	source storage.MetricsSource
}

// NewAggregator creates a trend aggregator over a metrics source.
func NewAggregator(source storage.MetricsSource) *Aggregator {
	return &Aggregator{source: source}
}

// Trends produces one series per trend biomarker covering the `days` window
// ending on date, oldest to newest. Days with no reading are zero-filled so
// every series has exactly one point per day. The percent change compares
// the newest value against the oldest; it is nil when the oldest value is
// zero, meaning "no trend", never "0%".
func (a *Aggregator) Trends(ctx context.Context, date time.Time, days int) (map[models.Biomarker]models.TrendSeries, error) {
	if days <= 0 {
		return map[models.Biomarker]models.TrendSeries{}, nil
	}

	// One batched fetch per day in the window; all biomarkers are read
	// from the same bundle.
	window := make([]*models.DailyMetrics, days)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallelism)
	for i := 0; i < days; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			day := date.AddDate(0, 0, -(days - 1 - i))
			m, err := a.source.FetchDailyMetrics(day)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", models.DayKey(day), err)
			}
			window[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	trends := make(map[models.Biomarker]models.TrendSeries, len(models.TrendBiomarkers))
	for _, b := range models.TrendBiomarkers {
		series := models.TrendSeries{
			Biomarker: b,
			Unit:      models.BiomarkerUnits[b],
			Values:    make([]models.TrendPoint, days),
		}
		for i, m := range window {
			day := date.AddDate(0, 0, -(days - 1 - i))
			point := models.TrendPoint{Date: day}
			if v := m.Value(b); v != nil {
				point.Value = *v
			}
			series.Values[i] = point
		}
		series.PercentChange = percentChange(series.Values)
		trends[b] = series
	}

	return trends, nil
}

// Series produces a single biomarker's series using per-value source reads.
func (a *Aggregator) Series(ctx context.Context, b models.Biomarker, date time.Time, days int) (models.TrendSeries, error) {
	series := models.TrendSeries{
		Biomarker: b,
		Unit:      models.BiomarkerUnits[b],
	}
	if days <= 0 {
		return series, nil
	}

	series.Values = make([]models.TrendPoint, days)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallelism)
	for i := 0; i < days; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			day := date.AddDate(0, 0, -(days - 1 - i))
			v, err := a.source.FetchSeriesValue(b, day)
			if err != nil {
				return fmt.Errorf("fetch %s %s: %w", b, models.DayKey(day), err)
			}
			point := models.TrendPoint{Date: day}
			if v != nil {
				point.Value = *v
			}
			series.Values[i] = point
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return series, err
	}

	series.PercentChange = percentChange(series.Values)
	return series, nil
}

// percentChange compares the newest point against the oldest. Nil when the
// oldest value is zero.
func percentChange(values []models.TrendPoint) *float64 {
	if len(values) < 2 {
		return nil
	}
	previous := values[0].Value
	current := values[len(values)-1].Value
	if previous == 0 {
		return nil
	}
	change := (current - previous) / previous * 100
	return &change
}
