package engine

import (
	"fmt"
	"time"

	"fintrack/internal/models"
)

// EvalInput gathers everything the alert evaluator needs for one accepted
// transaction. Transactions must already include the new transaction.
type EvalInput struct {
	Now                 time.Time
	Transaction         models.Transaction
	Transactions        []models.Transaction
	Budgets             []models.Budget
	Goals               []models.Goal
	Notifications       []models.AppNotification
	LowBalanceThreshold int64

	// GoalHandled is set when the goal contribution has already been
	// applied by the edit path, so the evaluator must not add it again.
	GoalHandled bool
}

// EvalResult carries the updated notification and goal lists.
type EvalResult struct {
	Notifications []models.AppNotification
	Goals         []models.Goal
	GoalsChanged  bool
}

// EvaluateTransaction inspects one newly accepted transaction for
// notification-worthy threshold crossings. Rules run in a fixed order:
// income confirmation, goal milestone, low-balance crossing, and
// budget-exceeded crossing. The crossing detectors compare against the
// state before this single transaction, so a threshold already crossed
// stays silent on later samples.
func EvaluateTransaction(in EvalInput) EvalResult {
	res := EvalResult{
		Notifications: in.Notifications,
		Goals:         in.Goals,
	}
	tx := in.Transaction

	// 1. Income confirmation: always announced.
	if tx.Type == models.TransactionTypeIncome {
		res.Notifications = Push(res.Notifications, in.Now, models.NotificationTypeSuccess,
			"Income Received",
			fmt.Sprintf("%s from %s", money(tx.Amount), tx.Description))
	}

	// 2. Goal milestone: expense contributions move the goal forward;
	// notifications fire only on strict 50%/100% crossings.
	if !in.GoalHandled && tx.Type == models.TransactionTypeExpense && tx.GoalID != nil {
		goals := make([]models.Goal, len(in.Goals))
		copy(goals, in.Goals)

		for i := range goals {
			g := &goals[i]
			if g.ID != *tx.GoalID {
				continue
			}

			before := g.Percent()
			g.CurrentAmount += tx.Amount
			after := g.Percent()

			res.Goals = goals
			res.GoalsChanged = true

			// A non-positive target has no computable percent.
			if g.TargetAmount > 0 {
				switch {
				case before < 100 && after >= 100:
					res.Notifications = Push(res.Notifications, in.Now, models.NotificationTypeSuccess,
						"Goal Reached",
						fmt.Sprintf("You completed your goal %q (%s)", g.Name, money(g.TargetAmount)))
				case before < 50 && after >= 50:
					res.Notifications = Push(res.Notifications, in.Now, models.NotificationTypeInfo,
						"Halfway There",
						fmt.Sprintf("You are halfway to your goal %q", g.Name))
				}
			}
			break
		}
	}

	// 3. Low-balance warning: one-shot crossing below the threshold.
	balance := Balance(in.Transactions)
	balanceBefore := balance
	switch tx.Type {
	case models.TransactionTypeIncome:
		balanceBefore -= tx.Amount
	case models.TransactionTypeExpense:
		balanceBefore += tx.Amount
	}
	if balance < in.LowBalanceThreshold && balanceBefore >= in.LowBalanceThreshold {
		res.Notifications = Push(res.Notifications, in.Now, models.NotificationTypeAlert,
			"Low Balance",
			fmt.Sprintf("Your balance dropped below %s", money(in.LowBalanceThreshold)))
	}

	// 4. Budget exceeded: one-shot crossing of the category limit within
	// the current period window.
	if tx.Type == models.TransactionTypeExpense {
		for _, b := range in.Budgets {
			if b.Category != tx.Category {
				continue
			}

			start := PeriodStart(b.Period, in.Now)
			var spent int64
			for _, t := range in.Transactions {
				if t.Type == models.TransactionTypeExpense && t.Category == b.Category && !t.Date.Before(start) {
					spent += t.Amount
				}
			}

			if spent > b.Limit && spent-tx.Amount <= b.Limit {
				res.Notifications = Push(res.Notifications, in.Now, models.NotificationTypeAlert,
					"Budget Exceeded",
					fmt.Sprintf("You spent %s of your %s %s budget (%s)",
						money(spent), b.Category, b.Period, money(b.Limit)))
			}
			break
		}
	}

	return res
}

// Balance returns total income minus total expense across the list.
func Balance(transactions []models.Transaction) int64 {
	var balance int64
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			balance += t.Amount
		case models.TransactionTypeExpense:
			balance -= t.Amount
		}
	}
	return balance
}

// ApplyGoalDeletion removes a deleted transaction's contribution from its
// linked goal, floored at zero. Returns the (possibly new) goal list and
// whether anything changed.
func ApplyGoalDeletion(goals []models.Goal, tx models.Transaction) ([]models.Goal, bool) {
	if tx.Type != models.TransactionTypeExpense || tx.GoalID == nil {
		return goals, false
	}

	out := make([]models.Goal, len(goals))
	copy(out, goals)
	for i := range out {
		if out[i].ID != *tx.GoalID {
			continue
		}
		out[i].CurrentAmount -= tx.Amount
		if out[i].CurrentAmount < 0 {
			out[i].CurrentAmount = 0
		}
		return out, true
	}
	return goals, false
}

// ApplyGoalEdit adjusts goal amounts by the net delta when a transaction's
// goal link or amount changes: the old contribution is subtracted and the
// new one added, each floored at zero.
func ApplyGoalEdit(goals []models.Goal, oldTx, newTx models.Transaction) ([]models.Goal, bool) {
	out, changed := ApplyGoalDeletion(goals, oldTx)

	if newTx.Type == models.TransactionTypeExpense && newTx.GoalID != nil {
		added := make([]models.Goal, len(out))
		copy(added, out)
		for i := range added {
			if added[i].ID != *newTx.GoalID {
				continue
			}
			added[i].CurrentAmount += newTx.Amount
			return added, true
		}
	}

	return out, changed
}
