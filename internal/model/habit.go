package model

import "time"

// HabitType is the tagged classification of a habit. Mutation and
// validation boundaries switch exhaustively on it.
type HabitType string

const (
	HabitTypeBinary       HabitType = "binary"
	HabitTypeQuantifiable HabitType = "quantifiable"
	HabitTypeTimeBased    HabitType = "time_based"
)

// Valid reports whether t is one of the three enumerated types.
func (t HabitType) Valid() bool {
	switch t {
	case HabitTypeBinary, HabitTypeQuantifiable, HabitTypeTimeBased:
		return true
	}
	return false
}

// Numeric reports whether tracking t requires a numeric value.
func (t HabitType) Numeric() bool {
	return t == HabitTypeQuantifiable || t == HabitTypeTimeBased
}

type Habit struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	HabitType       HabitType `json:"habit_type"`
	TargetValue     *float64  `json:"target_value,omitempty"`
	TargetUnit      string    `json:"target_unit,omitempty"`
	Frequency       string    `json:"frequency,omitempty"`
	Category        string    `json:"category,omitempty"`
	Color           string    `json:"color,omitempty"`
	ReminderEnabled bool      `json:"reminder_enabled"`
	ReminderTime    string    `json:"reminder_time,omitempty"` // "HH:MM"
	CreatedAt       time.Time `json:"created_at,omitempty"`
	IsActive        bool      `json:"is_active,omitempty"`
}

// DailyRecord is one tracking record; the backend guarantees at most one
// per (habit_id, date).
type DailyRecord struct {
	ID        string   `json:"id"`
	HabitID   string   `json:"habit_id"`
	UserID    string   `json:"user_id,omitempty"`
	Date      string   `json:"date"` // "2006-01-02"
	Completed bool     `json:"completed"`
	Value     *float64 `json:"value,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// ReminderPending is a habit due for a reminder notification. Produced by
// one poll cycle and discarded after evaluation.
type ReminderPending struct {
	HabitID      string `json:"habit_id"`
	Name         string `json:"name"`
	ReminderTime string `json:"reminder_time"` // "HH:MM"
}
