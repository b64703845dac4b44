package models

import "time"

// Goal represents a savings target. CurrentAmount starts at zero and is
// adjusted only through linked transactions.
type Goal struct {
	Base
	Name          string     `gorm:"not null" json:"name"`
	TargetAmount  int64      `gorm:"type:bigint;not null" json:"target_amount"`
	CurrentAmount int64      `gorm:"type:bigint;default:0" json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Color         string     `json:"color,omitempty"`
	Icon          string     `json:"icon,omitempty"`
}

// Percent returns progress toward the target as a percentage. A target of
// zero or less has no computable percent; it returns 0 rather than dividing.
func (g *Goal) Percent() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return float64(g.CurrentAmount) / float64(g.TargetAmount) * 100
}
