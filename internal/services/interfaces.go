package services

import (
	"context"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Type      *models.TransactionType
	Category  *string
	MinAmount *int64
	MaxAmount *int64
}

// Snapshot is a read-only copy of session state handed to collaborators
// such as the insight generator.
type Snapshot struct {
	Transactions []models.Transaction
	Budgets      []models.Budget
	Goals        []models.Goal
}

// SessionServicer is the single owner of the in-memory session state. Every
// mutation goes through it, which preserves the single-writer model: core
// engine functions compute new slices and the session swaps them in whole.
//
// Mutating operations persist optimistically: the in-memory update always
// takes effect, and a store failure is logged and surfaced as an alert
// notification instead of failing the call. Only validation and not-found
// conditions produce errors.
type SessionServicer interface {
	// Load lists all collections from the stores and, on the first call,
	// runs the bill auto-pay scheduler before any user event is accepted.
	Load(ctx context.Context) error

	ListTransactions(page pagination.PageRequest, filter TransactionFilter) pagination.PageResponse[models.Transaction]
	GetTransaction(id string) (*models.Transaction, error)
	AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	ListBills() []models.Bill
	GetBill(id string) (*models.Bill, error)
	AddBill(ctx context.Context, bill models.Bill) (*models.Bill, error)
	UpdateBill(ctx context.Context, bill models.Bill) (*models.Bill, error)
	DeleteBill(ctx context.Context, id string) error
	PayBill(ctx context.Context, id string) (*models.Transaction, error)

	ListBudgets() []models.Budget
	AddBudget(ctx context.Context, budget models.Budget) (*models.Budget, error)
	UpdateBudget(ctx context.Context, budget models.Budget) (*models.Budget, error)
	DeleteBudget(ctx context.Context, id string) error

	ListGoals() []models.Goal
	GetGoal(id string) (*models.Goal, error)
	AddGoal(ctx context.Context, goal models.Goal) (*models.Goal, error)
	UpdateGoal(ctx context.Context, goal models.Goal) (*models.Goal, error)
	DeleteGoal(ctx context.Context, id string) error

	ListNotifications(page pagination.PageRequest) pagination.PageResponse[models.AppNotification]
	UnreadCount() int
	MarkNotificationsRead(ctx context.Context) error
	ClearNotifications(ctx context.Context) error

	Snapshot() Snapshot

	// SetBroadcast registers a hook invoked for every notification added
	// to the session, e.g. to push it to websocket clients.
	SetBroadcast(fn func(models.AppNotification))
}
