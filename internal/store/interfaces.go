// Package store defines the persistence collaborators consumed by the
// session service and their GORM-backed implementations. The session keeps
// its own in-memory state and updates it optimistically; stores are only
// the durability layer behind it.
package store

import (
	"context"

	"fintrack/internal/models"
)

// TransactionStore persists transactions row by row.
type TransactionStore interface {
	List(ctx context.Context) ([]models.Transaction, error)
	Create(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id string) error
}

// BillStore persists the bill collection with full-replace sync semantics.
// ReplaceAll deletes and reinserts the whole collection; this is lossy
// under concurrent writers from multiple sessions, which callers must
// accept — there is no partial update or per-id diffing.
type BillStore interface {
	List(ctx context.Context) ([]models.Bill, error)
	ReplaceAll(ctx context.Context, bills []models.Bill) error
}

// GoalStore persists the goal collection with full-replace sync semantics.
type GoalStore interface {
	List(ctx context.Context) ([]models.Goal, error)
	ReplaceAll(ctx context.Context, goals []models.Goal) error
}

// BudgetStore persists the budget collection with full-replace sync semantics.
type BudgetStore interface {
	List(ctx context.Context) ([]models.Budget, error)
	ReplaceAll(ctx context.Context, budgets []models.Budget) error
}

// NotificationStore persists the notification list with full-replace sync
// semantics.
type NotificationStore interface {
	List(ctx context.Context) ([]models.AppNotification, error)
	ReplaceAll(ctx context.Context, notifications []models.AppNotification) error
}
