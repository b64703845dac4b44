package engine

import (
	"testing"
	"time"

	"fintrack/internal/models"
)

func TestPeriodStart(t *testing.T) {
	// Saturday, March 16th.
	now := time.Date(2024, 3, 16, 15, 45, 0, 0, time.UTC)

	t.Run("monthly_starts_first_of_month", func(t *testing.T) {
		want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		if got := PeriodStart(models.BudgetPeriodMonthly, now); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("weekly_starts_most_recent_sunday", func(t *testing.T) {
		want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		if got := PeriodStart(models.BudgetPeriodWeekly, now); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("weekly_on_sunday_is_same_day", func(t *testing.T) {
		sunday := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
		want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		if got := PeriodStart(models.BudgetPeriodWeekly, sunday); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}
