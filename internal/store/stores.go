package store

import (
	"context"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// transactionStore is the GORM-backed TransactionStore.
type transactionStore struct {
	db *gorm.DB
}

// NewTransactionStore creates a TransactionStore on top of the given database.
func NewTransactionStore(db *gorm.DB) TransactionStore {
	return &transactionStore{db: db}
}

func (s *transactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.WithContext(ctx).Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return transactions, nil
}

func (s *transactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *transactionStore) Update(ctx context.Context, tx *models.Transaction) error {
	if err := s.db.WithContext(ctx).Save(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *transactionStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// collection implements List/ReplaceAll for a whole table. ReplaceAll is a
// delete-all-then-insert inside one database transaction.
type collection[T any] struct {
	db      *gorm.DB
	orderBy string
}

func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	q := c.db.WithContext(ctx)
	if c.orderBy != "" {
		q = q.Order(c.orderBy)
	}

	var items []T
	if err := q.Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return items, nil
}

func (c *collection[T]) ReplaceAll(ctx context.Context, items []T) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&zero).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// NewBillStore creates a full-replace BillStore.
func NewBillStore(db *gorm.DB) BillStore {
	return &collection[models.Bill]{db: db}
}

// NewGoalStore creates a full-replace GoalStore.
func NewGoalStore(db *gorm.DB) GoalStore {
	return &collection[models.Goal]{db: db}
}

// NewBudgetStore creates a full-replace BudgetStore.
func NewBudgetStore(db *gorm.DB) BudgetStore {
	return &collection[models.Budget]{db: db}
}

// NewNotificationStore creates a full-replace NotificationStore. Listing
// returns most recent entries first.
func NewNotificationStore(db *gorm.DB) NotificationStore {
	return &collection[models.AppNotification]{db: db, orderBy: "timestamp DESC"}
}
