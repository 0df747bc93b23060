package model

import "time"

// DashboardEntry joins a habit with today's tracking state. Entries are
// rebuilt wholesale on every refresh, never mutated in place.
type DashboardEntry struct {
	Habit            Habit        `json:"habit"`
	TodayRecord      *DailyRecord `json:"today_record"`
	IsCompletedToday bool         `json:"is_completed_today"`
}

type DashboardStats struct {
	TotalHabits    int     `json:"total_habits"`
	CompletedToday int     `json:"completed_today"`
	CompletionRate float64 `json:"completion_rate"`
}

// StreakInfo is the per-habit consecutive-completion summary.
type StreakInfo struct {
	HabitID          string `json:"habit_id"`
	HabitName        string `json:"habit_name"`
	CurrentStreak    int    `json:"current_streak"`
	BestStreak       int    `json:"best_streak"`
	TotalCompletions int    `json:"total_completions"`
}

// ChartPoint is one day of the completion-rate series.
type ChartPoint struct {
	Date           string  `json:"date"`
	CompletionRate float64 `json:"completion_rate"`
}

type OverviewSummary struct {
	TotalHabits           int     `json:"total_habits"`
	DaysTracked           int     `json:"days_tracked"`
	AverageCompletionRate float64 `json:"average_completion_rate"`
}

type HabitStat struct {
	HabitID        string  `json:"habit_id"`
	Name           string  `json:"name"`
	CompletedDays  int     `json:"completed_days"`
	CompletionRate float64 `json:"completion_rate"`
}

type AnalyticsSummary struct {
	ChartData  []ChartPoint    `json:"chart_data"`
	Summary    OverviewSummary `json:"summary"`
	HabitStats []HabitStat     `json:"habit_stats"`
}

// IntegrationStatus reports third-party share connections.
type IntegrationStatus struct {
	SlackConnected bool   `json:"slack_connected"`
	SlackTeam      string `json:"slack_team,omitempty"`
}

// DashboardView is the aggregate snapshot owned by the aggregator.
// Consumers receive it as an immutable value; a refresh replaces the whole
// snapshot in one pointer swap.
type DashboardView struct {
	Stats       DashboardStats    `json:"stats"`
	Entries     []DashboardEntry  `json:"entries"`
	Analytics   AnalyticsSummary  `json:"analytics"`
	Streaks     []StreakInfo      `json:"streaks"`
	Integration IntegrationStatus `json:"integration_status"`
	FetchedAt   time.Time         `json:"fetched_at"`
}
