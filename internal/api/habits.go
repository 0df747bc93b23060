package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gajendran57/GoalGrid/internal/model"
)

// HabitInput is the create/update payload. TargetValue is a pointer so a
// dropped value is omitted from the wire rather than sent as a zero.
type HabitInput struct {
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	HabitType       model.HabitType `json:"habit_type"`
	TargetValue     *float64        `json:"target_value,omitempty"`
	TargetUnit      string          `json:"target_unit,omitempty"`
	Frequency       string          `json:"frequency,omitempty"`
	Category        string          `json:"category,omitempty"`
	Color           string          `json:"color,omitempty"`
	ReminderEnabled bool            `json:"reminder_enabled"`
	ReminderTime    string          `json:"reminder_time,omitempty"`
}

// TrackRequest is the daily tracking payload. Binary habits send no value.
type TrackRequest struct {
	Completed bool     `json:"completed"`
	Value     *float64 `json:"value,omitempty"`
}

func (c *Client) CreateHabit(ctx context.Context, input HabitInput) (*model.Habit, error) {
	var out model.Habit
	if err := c.do(ctx, http.MethodPost, "habits_create", "/api/habits", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateHabit(ctx context.Context, id string, input HabitInput) (*model.Habit, error) {
	var out model.Habit
	path := fmt.Sprintf("/api/habits/%s", id)
	if err := c.do(ctx, http.MethodPut, "habits_update", path, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/habits/%s", id)
	return c.do(ctx, http.MethodDelete, "habits_delete", path, nil, nil)
}

// TrackHabit records today's progress for one habit and returns the
// resulting record. The backend upserts on (habit_id, today).
func (c *Client) TrackHabit(ctx context.Context, id string, req TrackRequest) (*model.DailyRecord, error) {
	var out model.DailyRecord
	path := fmt.Sprintf("/api/habits/%s/track", id)
	if err := c.do(ctx, http.MethodPost, "habits_track", path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HabitRecords returns the trailing window of daily records for one habit.
func (c *Client) HabitRecords(ctx context.Context, id string, days int) ([]model.DailyRecord, error) {
	var out []model.DailyRecord
	path := fmt.Sprintf("/api/habits/%s/records?days=%d", id, days)
	if err := c.do(ctx, http.MethodGet, "habits_records", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingReminders returns reminder-enabled habits not yet completed today.
func (c *Client) PendingReminders(ctx context.Context) ([]model.ReminderPending, error) {
	var out []model.ReminderPending
	if err := c.do(ctx, http.MethodGet, "reminders_pending", "/api/notifications/reminders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
