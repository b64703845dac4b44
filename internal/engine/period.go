package engine

import (
	"time"

	"fintrack/internal/models"
)

// PeriodStart returns the start of the current budget window: the first of
// the month for monthly budgets, the most recent Sunday for weekly ones.
func PeriodStart(period models.BudgetPeriod, now time.Time) time.Time {
	if period == models.BudgetPeriodWeekly {
		sunday := now.AddDate(0, 0, -int(now.Weekday()))
		return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 0, 0, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
