package habit

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Gajendran57/GoalGrid/internal/api"
	"github.com/Gajendran57/GoalGrid/internal/apperr"
)

var (
	colorPattern        = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	reminderTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// buildPayload validates raw form input and shapes the wire payload for
// the habit's type. Validation failures never reach the backend.
func buildPayload(input Input) (*api.HabitInput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &apperr.ValidationError{Field: "name", Message: "name is required"}
	}
	if !input.HabitType.Valid() {
		return nil, &apperr.ValidationError{Field: "habit_type", Message: "must be binary, quantifiable or time_based"}
	}
	if input.Color != "" && !colorPattern.MatchString(input.Color) {
		return nil, &apperr.ValidationError{Field: "color", Message: "must be a hex color like #8B5CF6"}
	}
	if input.ReminderEnabled && !reminderTimePattern.MatchString(input.ReminderTime) {
		return nil, &apperr.ValidationError{Field: "reminder_time", Message: "must be HH:MM"}
	}

	payload := &api.HabitInput{
		Name:            name,
		Description:     input.Description,
		HabitType:       input.HabitType,
		Frequency:       input.Frequency,
		Category:        input.Category,
		Color:           input.Color,
		ReminderEnabled: input.ReminderEnabled,
	}
	if input.ReminderEnabled {
		payload.ReminderTime = input.ReminderTime
	}

	// Target fields are meaningful only for numeric habit types.
	if input.HabitType.Numeric() {
		payload.TargetUnit = input.TargetUnit
		payload.TargetValue = parseTargetValue(input.TargetValue)
	}

	return payload, nil
}

// parseTargetValue parses the raw target as a finite decimal. Anything
// else is omitted from the payload rather than sent as NaN.
func parseTargetValue(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}
