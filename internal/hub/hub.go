// ABOUTME: Cache/orchestration hub: the single façade over the scoring pipeline.
// ABOUTME: Fetches, computes, and atomically publishes per-date cache entries with TTL.
package hub

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/vitality/internal/baseline"
	"github.com/harperreed/vitality/internal/models"
	"github.com/harperreed/vitality/internal/scoring"
	"github.com/harperreed/vitality/internal/storage"
	"github.com/harperreed/vitality/internal/trend"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// State is the pipeline state for one date key.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Option configures a Hub.
type Option func(*Hub)

// WithTTL overrides the cache TTL.
func WithTTL(ttl time.Duration) Option {
	return func(h *Hub) { h.ttl = ttl }
}

// WithClock injects a clock, used by tests to age cache entries.
func WithClock(now func() time.Time) Option {
	return func(h *Hub) { h.now = now }
}

// WithLookbackDays overrides the baseline lookback window.
func WithLookbackDays(days int) Option {
	return func(h *Hub) { h.lookbackDays = days }
}

// WithTrendDays overrides the trend window.
func WithTrendDays(days int) Option {
	return func(h *Hub) { h.trendDays = days }
}

// WithLogger injects a logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Hub) { h.logger = logger }
}

// Hub owns the per-date result cache and orchestrates the pipeline:
// fetch raw metrics, compute the baseline, run both composite calculators
// concurrently, aggregate trends, and publish the assembled entry
// atomically. Construct exactly one Hub per process and inject it by
// reference; it replaces any notion of a global cache holder.
type Hub struct {
	source    storage.MetricsSource
	store     storage.ScoreStore
	baselines *baseline.Engine
	trends    *trend.Aggregator
	logger    *log.Logger

	ttl          time.Duration
	lookbackDays int
	trendDays    int
	now          func() time.Time

	mu          sync.RWMutex
	cache       map[string]*models.CacheEntry
	states      map[string]State
	displayed   string
	subscribers map[int]chan *models.CacheEntry
	nextSubID   int

	inflight singleflight.Group
}

// New creates the hub over a metrics source and an optional score store.
func New(source storage.MetricsSource, store storage.ScoreStore, opts ...Option) *Hub {
	h := &Hub{
		source:       source,
		store:        store,
		baselines:    baseline.NewEngine(source),
		trends:       trend.NewAggregator(source),
		logger:       log.New(io.Discard),
		ttl:          models.CacheTTL,
		lookbackDays: baseline.DefaultLookbackDays,
		trendDays:    trend.DefaultWindowDays,
		now:          time.Now,
		cache:        make(map[string]*models.CacheEntry),
		states:       make(map[string]State),
		subscribers:  make(map[int]chan *models.CacheEntry),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// LoadData returns the published entry for a date, computing it when the
// cache has no fresh entry. A fresh cache hit performs zero source I/O.
// Concurrent calls for the same date share one underlying computation.
func (h *Hub) LoadData(ctx context.Context, date time.Time) (*models.CacheEntry, error) {
	key := models.DayKey(date)

	if entry := h.cached(key); entry != nil {
		h.publish(entry)
		return entry, nil
	}

	v, err, _ := h.inflight.Do(key, func() (interface{}, error) {
		// Re-check under the flight: another caller may have just
		// finished populating this key.
		if entry := h.cached(key); entry != nil {
			return entry, nil
		}

		// The flight is shared: joiners must not lose the result to the
		// initiating caller's cancellation, and an abandoned computation
		// still runs to completion and populates the cache.
		ctx := context.WithoutCancel(ctx)

		h.setState(key, StateLoading)
		entry, err := h.compute(ctx, date)
		if err != nil {
			h.setState(key, StateFailed)
			return nil, fmt.Errorf("load %s: %w", key, err)
		}

		// Atomic publication: the entry becomes visible wholesale or
		// not at all. No partially-updated state is ever stored.
		h.mu.Lock()
		h.cache[key] = entry
		h.states[key] = StateReady
		h.mu.Unlock()

		h.publish(entry)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.CacheEntry), nil
}

// compute runs the full pipeline for one date.
func (h *Hub) compute(ctx context.Context, date time.Time) (*models.CacheEntry, error) {
	raw, err := h.source.FetchDailyMetrics(date)
	if err != nil {
		return nil, fmt.Errorf("fetch raw metrics: %w", err)
	}

	base, err := h.baselines.Calculate(ctx, date, h.lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("compute baseline: %w", err)
	}

	// Both calculators depend only on the metrics and baseline already in
	// hand, so they run concurrently with the trend aggregation and join
	// before assembly.
	var recovery, sleep *models.CompositeScoreResult
	var trends map[models.Biomarker]models.TrendSeries

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recovery = scoring.RecoveryCalculator{}.Calculate(date, raw, base)
		return nil
	})
	g.Go(func() error {
		sleep = scoring.SleepCalculator{}.Calculate(date, raw, base)
		return nil
	})
	g.Go(func() error {
		var err error
		trends, err = h.trends.Trends(ctx, date, h.trendDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate trends: %w", err)
	}

	return &models.CacheEntry{
		Date:      date,
		Raw:       raw,
		Baseline:  base,
		Recovery:  recovery,
		Sleep:     sleep,
		Trends:    trends,
		Timestamp: h.now(),
	}, nil
}

// cached returns the entry for a key when one exists and is younger than
// the TTL.
func (h *Hub) cached(key string) *models.CacheEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entry, ok := h.cache[key]
	if !ok || entry.Expired(h.now(), h.ttl) {
		return nil
	}
	return entry
}

// State reports the pipeline state for a date.
func (h *Hub) State(date time.Time) State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.states[models.DayKey(date)]
}

func (h *Hub) setState(key string, s State) {
	h.mu.Lock()
	h.states[key] = s
	h.mu.Unlock()
}

// SetDisplayedDate records which date the caller is currently viewing.
// Completed computations republish into subscribers only when their date
// still matches at completion time.
func (h *Hub) SetDisplayedDate(date time.Time) {
	h.mu.Lock()
	h.displayed = models.DayKey(date)
	h.mu.Unlock()
}

// Refresh evicts the currently displayed date and recomputes it. This and
// TTL expiry are the only invalidation paths short of ClearCache.
func (h *Hub) Refresh(ctx context.Context) (*models.CacheEntry, error) {
	h.mu.Lock()
	key := h.displayed
	if key == "" {
		h.mu.Unlock()
		return nil, fmt.Errorf("refresh: no displayed date")
	}
	delete(h.cache, key)
	h.states[key] = StateIdle
	h.mu.Unlock()

	date, err := time.ParseInLocation("2006-01-02", key, time.Local)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return h.LoadData(ctx, date)
}

// ClearCache drops every cached entry and resets all states.
func (h *Hub) ClearCache() {
	h.mu.Lock()
	h.cache = make(map[string]*models.CacheEntry)
	h.states = make(map[string]State)
	h.mu.Unlock()
}

// Subscribe registers for published entries. The returned cancel function
// removes the subscription. Slow subscribers miss intermediate entries
// rather than blocking publication.
func (h *Hub) Subscribe() (<-chan *models.CacheEntry, func()) {
	h.mu.Lock()
	id := h.nextSubID
	h.nextSubID++
	ch := make(chan *models.CacheEntry, 8)
	h.subscribers[id] = ch
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subscribers, id)
		h.mu.Unlock()
		// Channel is left open for the GC; closing here would race
		// with a concurrent publish.
	}
}

// publish fans an entry out to subscribers, but only when its date is
// still the one being displayed. A computation whose caller navigated away
// populates the cache without republishing into the active view.
func (h *Hub) publish(entry *models.CacheEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.displayed != "" && h.displayed != entry.Key() {
		return
	}
	for _, ch := range h.subscribers {
		select {
		case ch <- entry:
		default:
		}
	}
}

// SaveScores persists the entry's composite scores with their baseline
// snapshot. The store retries transient failures once internally; an error
// here is recoverable and leaves the in-memory cache untouched.
func (h *Hub) SaveScores(entry *models.CacheEntry) error {
	if h.store == nil {
		return fmt.Errorf("save scores: no store configured")
	}
	for _, result := range []*models.CompositeScoreResult{entry.Recovery, entry.Sleep} {
		if result == nil {
			continue
		}
		s := models.NewPersistedScore(result, entry.Baseline)
		if err := h.store.UpsertScore(s); err != nil {
			h.logger.Warn("score upsert failed",
				"date", models.DayKey(entry.Date), "score_type", result.ScoreType, "err", err)
			return err
		}
	}
	return nil
}
