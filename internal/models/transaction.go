package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense entry.
// Amounts are stored in cents.
type Transaction struct {
	Base
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Category    string          `gorm:"not null" json:"category"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Notes       string          `json:"notes,omitempty"`

	// Optional receipt image, opaque to the application.
	Attachment []byte `json:"attachment,omitempty"`

	// Set on transactions synthesized by the bill scheduler.
	Recurring bool `gorm:"default:false" json:"recurring"`

	// At most one of GoalID/BillID is treated as a causal link.
	GoalID *string `gorm:"type:uuid" json:"goal_id,omitempty"`
	BillID *string `gorm:"type:uuid" json:"bill_id,omitempty"`
}

// LinkedToGoal reports whether this transaction contributes to a goal.
// Only expense transactions carrying a goal link count as contributions.
func (t *Transaction) LinkedToGoal(goalID string) bool {
	return t.Type == TransactionTypeExpense && t.GoalID != nil && *t.GoalID == goalID
}
