package models

// BudgetPeriod represents the period type for a budget
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
)

// Budget represents a spending limit for a category. Monthly budgets reset
// at calendar-month boundaries, weekly budgets at the most recent Sunday.
type Budget struct {
	Base
	Category string       `gorm:"not null;uniqueIndex" json:"category"`
	Limit    int64        `gorm:"type:bigint;not null" json:"limit"`
	Period   BudgetPeriod `gorm:"not null" json:"period"`
}
