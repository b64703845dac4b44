package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction persists a transaction of the given type and amount (in cents).
func CreateTestTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, amount int64, category string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:        txType,
		Amount:      amount,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Category:    category,
		Date:        time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBill persists a bill with the given due day and auto-pay flag.
func CreateTestBill(t *testing.T, db *gorm.DB, name string, amount int64, dueDay int, autoPay bool) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		Name:     name,
		Amount:   amount,
		Category: "Bills",
		DueDay:   dueDay,
		AutoPay:  autoPay,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateTestBudget persists a budget for the given category (limit in cents).
func CreateTestBudget(t *testing.T, db *gorm.DB, category string, limit int64, period models.BudgetPeriod) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category: category,
		Limit:    limit,
		Period:   period,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal persists a goal with the given target and current amounts.
func CreateTestGoal(t *testing.T, db *gorm.DB, target, current int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  target,
		CurrentAmount: current,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
