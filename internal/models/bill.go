package models

import "time"

// Bill represents a recurring monthly payment obligation.
type Bill struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Amount   int64  `gorm:"type:bigint;not null" json:"amount"`
	Category string `gorm:"not null" json:"category"`

	// Day of month the bill is due (1-31). Not calendar-validated: a bill
	// due on day 31 of a 30-day month counts as past due for the rest of
	// that month.
	DueDay int `gorm:"not null" json:"due_day"`

	AutoPay        bool       `gorm:"default:false" json:"auto_pay"`
	LastPaidDate   *time.Time `json:"last_paid_date,omitempty"`
	IsSubscription bool       `gorm:"default:false" json:"is_subscription"`
}

// PaidInMonth reports whether the bill was last paid within the calendar
// month and year of the given time.
func (b *Bill) PaidInMonth(t time.Time) bool {
	if b.LastPaidDate == nil {
		return false
	}
	return b.LastPaidDate.Year() == t.Year() && b.LastPaidDate.Month() == t.Month()
}
