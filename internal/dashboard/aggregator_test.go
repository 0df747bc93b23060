package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/api"
	"github.com/Gajendran57/GoalGrid/internal/model"
)

// fakeBackend serves the four dashboard fetches with injectable failures.
type fakeBackend struct {
	mu           sync.Mutex
	dashErr      error
	analyticsErr error
	streaksErr   error
	statusErr    error

	completedToday int
	fetches        atomic.Int64

	block chan struct{} // when set, Dashboard blocks until closed
}

func (f *fakeBackend) Dashboard(ctx context.Context) (*api.DashboardResponse, error) {
	// Only the first fetch cycle blocks; the trailing coalesced run must
	// complete.
	if f.fetches.Add(1) == 1 && f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dashErr != nil {
		return nil, f.dashErr
	}
	return &api.DashboardResponse{
		Stats: model.DashboardStats{TotalHabits: 2, CompletedToday: f.completedToday},
		Habits: []model.DashboardEntry{
			{Habit: model.Habit{ID: "h1", Name: "Run"}},
			{Habit: model.Habit{ID: "h2", Name: "Read"}},
		},
	}, nil
}

func (f *fakeBackend) AnalyticsOverview(ctx context.Context, days int) (*model.AnalyticsSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.analyticsErr != nil {
		return nil, f.analyticsErr
	}
	return &model.AnalyticsSummary{
		ChartData: []model.ChartPoint{{Date: "2026-08-31", CompletionRate: 50}},
	}, nil
}

func (f *fakeBackend) Streaks(ctx context.Context) ([]model.StreakInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.streaksErr != nil {
		return nil, f.streaksErr
	}
	return []model.StreakInfo{{HabitID: "h1", CurrentStreak: 3}}, nil
}

func (f *fakeBackend) IntegrationStatus(ctx context.Context) (*model.IntegrationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &model.IntegrationStatus{SlackConnected: true}, nil
}

func TestRefreshMergesAllFourFetches(t *testing.T) {
	backend := &fakeBackend{}
	agg := NewAggregator(backend, zap.NewNop())

	if err := agg.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := agg.Snapshot()
	if view == nil {
		t.Fatal("expected a snapshot after successful refresh")
	}
	if len(view.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(view.Entries))
	}
	if len(view.Analytics.ChartData) != 1 {
		t.Error("analytics slice missing from merged view")
	}
	if len(view.Streaks) != 1 {
		t.Error("streaks slice missing from merged view")
	}
	if !view.Integration.SlackConnected {
		t.Error("integration status missing from merged view")
	}
}

func TestRefreshFailureKeepsPreviousView(t *testing.T) {
	backend := &fakeBackend{}
	agg := NewAggregator(backend, zap.NewNop())

	if err := agg.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh failed: %v", err)
	}
	previous := agg.Snapshot()

	// Each of the four fetches failing alone must leave the view intact.
	failures := []func(*fakeBackend, error){
		func(b *fakeBackend, err error) { b.dashErr = err },
		func(b *fakeBackend, err error) { b.analyticsErr = err },
		func(b *fakeBackend, err error) { b.streaksErr = err },
		func(b *fakeBackend, err error) { b.statusErr = err },
	}
	for i, inject := range failures {
		backend.mu.Lock()
		backend.dashErr, backend.analyticsErr, backend.streaksErr, backend.statusErr = nil, nil, nil, nil
		inject(backend, errors.New("fetch failed"))
		backend.mu.Unlock()

		if err := agg.Refresh(context.Background()); err == nil {
			t.Fatalf("fetch %d: expected error", i)
		}
		if agg.Snapshot() != previous {
			t.Fatalf("fetch %d: failed refresh must not replace the snapshot", i)
		}
	}
}

func TestRefreshFailureWithNoViewLeavesNil(t *testing.T) {
	backend := &fakeBackend{streaksErr: errors.New("down")}
	agg := NewAggregator(backend, zap.NewNop())

	if err := agg.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if agg.Snapshot() != nil {
		t.Error("no partial view may appear on failure")
	}
}

func TestConcurrentRefreshCoalesces(t *testing.T) {
	backend := &fakeBackend{block: make(chan struct{})}
	agg := NewAggregator(backend, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- agg.Refresh(context.Background())
	}()

	// Wait for the first refresh to be in flight.
	for backend.fetches.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	// These land while the first is blocked: they must return immediately
	// and leave the trailing run to the in-flight holder.
	for i := 0; i < 3; i++ {
		if err := agg.Refresh(context.Background()); err != nil {
			t.Fatalf("coalesced refresh returned error: %v", err)
		}
	}

	close(backend.block)
	if err := <-done; err != nil {
		t.Fatalf("holder refresh failed: %v", err)
	}

	// One blocked run plus exactly one trailing run for the coalesced
	// requests.
	if got := backend.fetches.Load(); got != 2 {
		t.Errorf("expected 2 fetch cycles, got %d", got)
	}
	if agg.Snapshot() == nil {
		t.Error("expected a snapshot after refreshes settle")
	}
}

func TestRefreshReplacesSnapshotAtomically(t *testing.T) {
	backend := &fakeBackend{}
	agg := NewAggregator(backend, zap.NewNop())

	if err := agg.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := agg.Snapshot()

	backend.mu.Lock()
	backend.completedToday = 2
	backend.mu.Unlock()

	if err := agg.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := agg.Snapshot()

	if first == second {
		t.Fatal("refresh must produce a new snapshot, not mutate the old one")
	}
	if first.Stats.CompletedToday != 0 || second.Stats.CompletedToday != 2 {
		t.Error("old snapshot must remain unchanged after replacement")
	}
}
