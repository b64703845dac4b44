package engine

import (
	"fmt"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

const (
	// Days before the due day within which a reminder is raised.
	dueSoonWindowDays = 3

	// Window within which an existing reminder suppresses a new one.
	reminderDedupWindow = 24 * time.Hour
)

// AutoPayResult carries the outcome of one scheduler pass. NewTransactions
// are in bill-list order; the caller persists everything as a single batch
// after the full pass.
type AutoPayResult struct {
	Bills           []models.Bill
	NewTransactions []models.Transaction
	Notifications   []models.AppNotification
	BillsChanged    bool
}

// RunAutoPay evaluates every bill against the current date. It is intended
// to run exactly once per session, before any user-initiated event.
//
// For each bill not yet paid this calendar month:
//   - auto-pay off, due within dueSoonWindowDays: a warning reminder is
//     raised unless one mentioning the bill exists from the last 24 hours;
//   - auto-pay on, due day reached or passed: an expense transaction dated
//     today is synthesized, the bill's last-paid date advances to today,
//     and an info notification confirms the payment.
//
// A second run on the same day produces no further payments, since the
// first run marks each bill paid for the month.
func RunAutoPay(now time.Time, bills []models.Bill, notifications []models.AppNotification) AutoPayResult {
	res := AutoPayResult{
		Bills:         make([]models.Bill, len(bills)),
		Notifications: notifications,
	}
	copy(res.Bills, bills)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for i := range res.Bills {
		bill := &res.Bills[i]
		if bill.PaidInMonth(now) {
			continue
		}

		if !bill.AutoPay {
			daysUntilDue := bill.DueDay - now.Day()
			if daysUntilDue >= 0 && daysUntilDue <= dueSoonWindowDays &&
				!MentionedRecently(res.Notifications, bill.Name, now, reminderDedupWindow) {
				res.Notifications = Push(res.Notifications, now, models.NotificationTypeWarning,
					"Bill Due Soon",
					fmt.Sprintf("%s (%s) is due in %d day(s)", bill.Name, money(bill.Amount), daysUntilDue))
			}
			continue
		}

		if now.Day() >= bill.DueDay {
			billID := bill.ID
			tx := models.Transaction{
				Type:        models.TransactionTypeExpense,
				Amount:      bill.Amount,
				Description: bill.Name,
				Category:    bill.Category,
				Date:        today,
				Recurring:   true,
				BillID:      &billID,
			}
			tx.ID = uuid.New()
			tx.CreatedAt = now
			res.NewTransactions = append(res.NewTransactions, tx)

			paid := today
			bill.LastPaidDate = &paid
			res.BillsChanged = true

			res.Notifications = Push(res.Notifications, now, models.NotificationTypeInfo,
				"Bill Paid Automatically",
				fmt.Sprintf("%s was paid automatically (%s)", bill.Name, money(bill.Amount)))
		}
	}

	return res
}
