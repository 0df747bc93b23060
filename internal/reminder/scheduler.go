package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/model"
	"github.com/Gajendran57/GoalGrid/internal/notify"
	"github.com/Gajendran57/GoalGrid/pkg/metrics"
)

// Poller fetches the reminder-enabled habits not yet completed today.
type Poller interface {
	PendingReminders(ctx context.Context) ([]model.ReminderPending, error)
}

// Notifier fires a local notification.
type Notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

// minInterval is the floor for the tick period. Reminders match on the
// wall-clock minute, so a period under a minute could evaluate the same
// minute twice and fire duplicates.
const minInterval = time.Minute

// Scheduler polls pending reminders and fires a notification for every
// habit whose reminder time equals the current wall-clock minute. One tick
// runs immediately on start, then one per interval. Stop cancels the loop
// deterministically: when it returns, no further tick will run.
type Scheduler struct {
	poller   Poller
	notifier Notifier
	logger   *zap.Logger
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(poller Poller, notifier Notifier, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval < minInterval {
		interval = minInterval
	}
	return &Scheduler{
		poller:   poller,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins polling. Calling Start while already polling is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.logger.Info("Starting reminder scheduler",
		zap.Duration("interval", s.interval),
	)
	go s.run(ctx, s.done)
}

// Stop cancels the polling loop and waits for it to exit. After Stop
// returns no further ticks fire. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("Reminder scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one evaluation cycle. Poll failures are skipped and retried on
// the next tick; they are never fatal.
func (s *Scheduler) tick(ctx context.Context) {
	pending, err := s.poller.PendingReminders(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("Reminder poll failed, will retry next tick", zap.Error(err))
		}
		return
	}

	nowHM := s.now().Format("15:04")
	for _, p := range pending {
		if p.ReminderTime != nowHM {
			continue
		}
		n := notify.Notification{
			Tag:   p.HabitID,
			Title: "Habit Reminder",
			Body:  fmt.Sprintf("Time for: %s", p.Name),
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.logger.Warn("Failed to fire reminder",
				zap.String("habit_id", p.HabitID),
				zap.Error(err),
			)
			continue
		}
		metrics.RemindersFiredCount.Inc()
		s.logger.Info("Reminder fired",
			zap.String("habit_id", p.HabitID),
			zap.String("reminder_time", p.ReminderTime),
		)
	}
}
