package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/api"
	"github.com/Gajendran57/GoalGrid/internal/model"
	"github.com/Gajendran57/GoalGrid/pkg/metrics"
)

// Backend is the slice of the API client the aggregator fetches from.
type Backend interface {
	Dashboard(ctx context.Context) (*api.DashboardResponse, error)
	AnalyticsOverview(ctx context.Context, days int) (*model.AnalyticsSummary, error)
	Streaks(ctx context.Context) ([]model.StreakInfo, error)
	IntegrationStatus(ctx context.Context) (*model.IntegrationStatus, error)
}

// Aggregator owns the dashboard snapshot. Refresh fetches the four views
// concurrently and replaces the snapshot atomically: either all four
// succeed and the whole view is swapped, or the previous snapshot is kept
// and the error is surfaced. Consumers only ever see a consistent view.
type Aggregator struct {
	backend       Backend
	logger        *zap.Logger
	analyticsDays int

	mu       sync.Mutex
	view     *model.DashboardView
	inFlight bool
	dirty    bool
}

const defaultAnalyticsDays = 30

func NewAggregator(backend Backend, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		backend:       backend,
		logger:        logger,
		analyticsDays: defaultAnalyticsDays,
	}
}

// Snapshot returns the current view, or nil before the first successful
// refresh. The returned value is never mutated by the aggregator.
func (a *Aggregator) Snapshot() *model.DashboardView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Refresh is re-entrant-safe: at most one fetch cycle runs at a time.
// A call arriving while one is in flight marks the cycle dirty and
// returns; the in-flight holder runs one trailing cycle so the latest
// request's result wins.
func (a *Aggregator) Refresh(ctx context.Context) error {
	a.mu.Lock()
	if a.inFlight {
		a.dirty = true
		a.mu.Unlock()
		metrics.IncrementRefresh("coalesced")
		return nil
	}
	a.inFlight = true
	a.mu.Unlock()

	var err error
	for {
		err = a.runOnce(ctx)

		a.mu.Lock()
		if a.dirty {
			a.dirty = false
			a.mu.Unlock()
			continue
		}
		a.inFlight = false
		a.mu.Unlock()
		return err
	}
}

// runOnce performs one full fetch-and-merge cycle.
func (a *Aggregator) runOnce(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		dash      *api.DashboardResponse
		analytics *model.AnalyticsSummary
		streaks   []model.StreakInfo
		status    *model.IntegrationStatus
	)

	errCh := make(chan error, 4)
	var wg sync.WaitGroup
	run := func(fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				errCh <- err
				cancel() // fail fast: abandon the sibling fetches
			}
		}()
	}

	run(func() (err error) {
		dash, err = a.backend.Dashboard(ctx)
		return err
	})
	run(func() (err error) {
		analytics, err = a.backend.AnalyticsOverview(ctx, a.analyticsDays)
		return err
	})
	run(func() (err error) {
		streaks, err = a.backend.Streaks(ctx)
		return err
	})
	run(func() (err error) {
		status, err = a.backend.IntegrationStatus(ctx)
		return err
	})

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		a.logger.Warn("Dashboard refresh failed, keeping previous view", zap.Error(err))
		metrics.IncrementRefresh("failed")
		return err
	}

	next := &model.DashboardView{
		Stats:       dash.Stats,
		Entries:     dash.Habits,
		Analytics:   *analytics,
		Streaks:     streaks,
		Integration: *status,
		FetchedAt:   time.Now(),
	}

	// Single pointer swap: readers see the old view or the new one,
	// never a mix.
	a.mu.Lock()
	a.view = next
	a.mu.Unlock()

	metrics.IncrementRefresh("success")
	a.logger.Info("Dashboard refreshed",
		zap.Int("habits", len(next.Entries)),
		zap.Int("completed_today", next.Stats.CompletedToday),
	)
	return nil
}
