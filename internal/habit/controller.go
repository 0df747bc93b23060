package habit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/api"
	"github.com/Gajendran57/GoalGrid/internal/apperr"
	"github.com/Gajendran57/GoalGrid/internal/model"
	"github.com/Gajendran57/GoalGrid/internal/notify"
	"github.com/Gajendran57/GoalGrid/pkg/metrics"
)

// Backend is the slice of the API client mutations dispatch to.
type Backend interface {
	CreateHabit(ctx context.Context, input api.HabitInput) (*model.Habit, error)
	UpdateHabit(ctx context.Context, id string, input api.HabitInput) (*model.Habit, error)
	DeleteHabit(ctx context.Context, id string) error
	TrackHabit(ctx context.Context, id string, req api.TrackRequest) (*model.DailyRecord, error)
}

// Refresher re-fetches the dashboard after a successful mutation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Notifier fires a best-effort local notification.
type Notifier interface {
	Notify(ctx context.Context, n notify.Notification) error
}

// Input is raw habit form input. TargetValue arrives as entered by the
// user and is parsed here; a value that does not parse to a finite number
// is omitted from the payload rather than sent malformed.
type Input struct {
	Name            string
	Description     string
	HabitType       model.HabitType
	TargetValue     string
	TargetUnit      string
	Frequency       string
	Category        string
	Color           string
	ReminderEnabled bool
	ReminderTime    string
}

// Controller validates and dispatches habit mutations, then refreshes the
// dashboard so consumers see the result.
type Controller struct {
	backend   Backend
	refresher Refresher
	notifier  Notifier
	logger    *zap.Logger
}

func NewController(backend Backend, refresher Refresher, notifier Notifier, logger *zap.Logger) *Controller {
	return &Controller{
		backend:   backend,
		refresher: refresher,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create validates input and creates the habit.
func (c *Controller) Create(ctx context.Context, input Input) (*model.Habit, error) {
	payload, err := buildPayload(input)
	if err != nil {
		return nil, err
	}

	habit, err := c.backend.CreateHabit(ctx, *payload)
	if err != nil {
		return nil, err
	}

	c.refresh(ctx)
	c.logger.Info("Habit created",
		zap.String("habit_id", habit.ID),
		zap.String("habit_type", string(habit.HabitType)),
	)
	return habit, nil
}

// Update validates input and updates an existing habit.
func (c *Controller) Update(ctx context.Context, id string, input Input) (*model.Habit, error) {
	payload, err := buildPayload(input)
	if err != nil {
		return nil, err
	}

	habit, err := c.backend.UpdateHabit(ctx, id, *payload)
	if err != nil {
		return nil, err
	}

	c.refresh(ctx)
	return habit, nil
}

// Delete dispatches a habit deletion. User confirmation is the caller's
// concern; by the time Delete runs the decision is made.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.backend.DeleteHabit(ctx, id); err != nil {
		return err
	}
	c.refresh(ctx)
	c.logger.Info("Habit deleted", zap.String("habit_id", id))
	return nil
}

// Track records today's progress for one habit. Binary habits toggle
// relative to currentlyCompleted and carry no value. Numeric habits
// require input: a blank value aborts before any backend call, while a
// non-blank value that fails to parse is sent as 0 — a quirk the product
// depends on, do not "fix" without confirming.
func (c *Controller) Track(ctx context.Context, id string, habitType model.HabitType, currentlyCompleted bool, rawValue string) (*model.DailyRecord, error) {
	if !habitType.Valid() {
		return nil, &apperr.ValidationError{Field: "habit_type", Message: fmt.Sprintf("unknown habit type %q", habitType)}
	}

	var req api.TrackRequest
	if habitType.Numeric() {
		trimmed := strings.TrimSpace(rawValue)
		if trimmed == "" {
			metrics.IncrementTrack(string(habitType), "aborted")
			return nil, apperr.ErrValueRequired
		}
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			value = 0
		}
		req = api.TrackRequest{Completed: true, Value: &value}
	} else {
		req = api.TrackRequest{Completed: !currentlyCompleted}
	}

	record, err := c.backend.TrackHabit(ctx, id, req)
	if err != nil {
		metrics.IncrementTrack(string(habitType), "failed")
		return nil, err
	}
	metrics.IncrementTrack(string(habitType), "success")

	c.refresh(ctx)
	if record.Completed {
		// Best-effort celebration; a notification failure never fails
		// the tracking operation.
		_ = c.notifier.Notify(ctx, notify.Notification{
			Tag:   "celebrate:" + id,
			Title: "Great job!",
			Body:  "Habit tracked for today 🎉",
		})
	}
	return record, nil
}

func (c *Controller) refresh(ctx context.Context) {
	if err := c.refresher.Refresh(ctx); err != nil {
		// The mutation itself succeeded; the stale snapshot self-heals on
		// the next refresh.
		c.logger.Warn("Post-mutation refresh failed", zap.Error(err))
	}
}
