package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/engine"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/store"
	"fintrack/internal/uuid"
)

// sessionService owns the session state and implements SessionServicer.
// The mutex keeps a single writer at a time; all mutations swap in whole
// slices produced by the engine rather than editing shared ones in place.
type sessionService struct {
	mu  sync.Mutex
	cfg *config.Config

	transactions  []models.Transaction
	bills         []models.Bill
	budgets       []models.Budget
	goals         []models.Goal
	notifications []models.AppNotification

	transactionStore  store.TransactionStore
	billStore         store.BillStore
	budgetStore       store.BudgetStore
	goalStore         store.GoalStore
	notificationStore store.NotificationStore

	schedulerRan bool
	broadcast    func(models.AppNotification)

	now func() time.Time
}

// NewSessionService creates a SessionServicer over the given stores.
func NewSessionService(
	cfg *config.Config,
	transactions store.TransactionStore,
	bills store.BillStore,
	budgets store.BudgetStore,
	goals store.GoalStore,
	notifications store.NotificationStore,
) SessionServicer {
	return &sessionService{
		cfg:               cfg,
		transactionStore:  transactions,
		billStore:         bills,
		budgetStore:       budgets,
		goalStore:         goals,
		notificationStore: notifications,
		now:               time.Now,
	}
}

func (s *sessionService) SetBroadcast(fn func(models.AppNotification)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcast = fn
}

// Load populates the session from the stores and runs the auto-pay
// scheduler exactly once, before interactive events are served.
func (s *sessionService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.transactionStore.List(ctx)
	if err != nil {
		return err
	}
	bills, err := s.billStore.List(ctx)
	if err != nil {
		return err
	}
	budgets, err := s.budgetStore.List(ctx)
	if err != nil {
		return err
	}
	goals, err := s.goalStore.List(ctx)
	if err != nil {
		return err
	}
	notifications, err := s.notificationStore.List(ctx)
	if err != nil {
		return err
	}

	s.transactions = transactions
	s.bills = bills
	s.budgets = budgets
	s.goals = goals
	s.notifications = notifications

	if s.schedulerRan {
		return nil
	}
	s.schedulerRan = true
	s.runSchedulerLocked(ctx)
	return nil
}

// runSchedulerLocked performs the once-per-session auto-pay pass. The alert
// evaluator runs once per synthesized transaction, in bill-list order, and
// everything is persisted as a single batch after the full pass.
func (s *sessionService) runSchedulerLocked(ctx context.Context) {
	before := s.notifications

	res := engine.RunAutoPay(s.now(), s.bills, s.notifications)
	s.bills = res.Bills
	s.notifications = res.Notifications

	goalsChanged := false
	for _, tx := range res.NewTransactions {
		s.transactions = prependTransaction(s.transactions, tx)
		if s.evaluateLocked(tx, false) {
			goalsChanged = true
		}
	}

	for i := range res.NewTransactions {
		tx := res.NewTransactions[i]
		if err := s.transactionStore.Create(ctx, &tx); err != nil {
			s.persistFailureLocked("saving automatic bill payments", err)
			break
		}
	}
	if res.BillsChanged {
		if err := s.billStore.ReplaceAll(ctx, s.bills); err != nil {
			s.persistFailureLocked("syncing bills", err)
		}
	}
	if goalsChanged {
		if err := s.goalStore.ReplaceAll(ctx, s.goals); err != nil {
			s.persistFailureLocked("syncing goals", err)
		}
	}
	s.syncNotificationsLocked(ctx)
	s.publishLocked(before)
}

// evaluateLocked runs the alert evaluator for one accepted transaction and
// applies the resulting notification and goal updates. goalHandled marks
// transactions whose goal contribution was already applied by the edit path.
func (s *sessionService) evaluateLocked(tx models.Transaction, goalHandled bool) bool {
	res := engine.EvaluateTransaction(engine.EvalInput{
		Now:                 s.now(),
		Transaction:         tx,
		Transactions:        s.transactions,
		Budgets:             s.budgets,
		Goals:               s.goals,
		Notifications:       s.notifications,
		LowBalanceThreshold: s.cfg.LowBalanceThreshold,
		GoalHandled:         goalHandled,
	})
	s.notifications = res.Notifications
	if res.GoalsChanged {
		s.goals = res.Goals
	}
	return res.GoalsChanged
}

// persistFailureLocked records a store failure: the optimistic in-memory
// state stays, the failure is logged, and the user sees a single alert.
// Failed writes are never retried.
func (s *sessionService) persistFailureLocked(action string, err error) {
	logger.Get().Errorw("persistence failure", "action", action, "error", err)
	s.notifications = engine.Push(s.notifications, s.now(), models.NotificationTypeAlert,
		"Sync Failed",
		fmt.Sprintf("Your changes are kept locally, but %s failed", action))
}

// syncNotificationsLocked persists the notification list best-effort. A
// failure here is only logged; raising another alert would loop.
func (s *sessionService) syncNotificationsLocked(ctx context.Context) {
	if err := s.notificationStore.ReplaceAll(ctx, s.notifications); err != nil {
		logger.Get().Errorw("persistence failure", "action", "syncing notifications", "error", err)
	}
}

// publishLocked invokes the broadcast hook for notifications added since
// the given baseline, oldest first. Pushes only ever prepend, so the count
// difference identifies the new entries.
func (s *sessionService) publishLocked(before []models.AppNotification) {
	if s.broadcast == nil {
		return
	}
	added := len(s.notifications) - len(before)
	for i := added - 1; i >= 0; i-- {
		s.broadcast(s.notifications[i])
	}
}

// --- transactions ---

func (s *sessionService) ListTransactions(page pagination.PageRequest, filter TransactionFilter) pagination.PageResponse[models.Transaction] {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if matchesFilter(tx, filter) {
			filtered = append(filtered, tx)
		}
	}
	return pagination.Slice(filtered, page)
}

func matchesFilter(tx models.Transaction, f TransactionFilter) bool {
	if f.FromDate != nil && tx.Date.Before(*f.FromDate) {
		return false
	}
	if f.ToDate != nil && tx.Date.After(*f.ToDate) {
		return false
	}
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}
	if f.Category != nil && tx.Category != *f.Category {
		return false
	}
	if f.MinAmount != nil && tx.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && tx.Amount > *f.MaxAmount {
		return false
	}
	return true
}

func (s *sessionService) GetTransaction(id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.transactions {
		if tx.ID == id {
			found := tx
			return &found, nil
		}
	}
	return nil, apperrors.ErrTransactionNotFound
}

func (s *sessionService) AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	if tx.Type != models.TransactionTypeIncome && tx.Type != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if tx.Amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.notifications

	if tx.ID == "" {
		tx.ID = uuid.New()
	}
	tx.CreatedAt = s.now()
	if tx.Date.IsZero() {
		tx.Date = s.now()
	}

	s.transactions = prependTransaction(s.transactions, tx)
	goalsChanged := s.evaluateLocked(tx, false)

	if err := s.transactionStore.Create(ctx, &tx); err != nil {
		s.persistFailureLocked("saving the transaction", err)
	}
	if goalsChanged {
		if err := s.goalStore.ReplaceAll(ctx, s.goals); err != nil {
			s.persistFailureLocked("syncing goals", err)
		}
	}
	s.syncNotificationsLocked(ctx)
	s.publishLocked(before)
	return &tx, nil
}

func (s *sessionService) UpdateTransaction(ctx context.Context, updated models.Transaction) (*models.Transaction, error) {
	if updated.Type != models.TransactionTypeIncome && updated.Type != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if updated.Amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.notifications

	idx := -1
	for i, tx := range s.transactions {
		if tx.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.ErrTransactionNotFound
	}

	old := s.transactions[idx]
	updated.CreatedAt = old.CreatedAt
	if updated.Date.IsZero() {
		updated.Date = old.Date
	}

	transactions := make([]models.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	transactions[idx] = updated
	s.transactions = transactions

	goals, goalsChanged := engine.ApplyGoalEdit(s.goals, old, updated)
	if goalsChanged {
		s.goals = goals
	}
	s.evaluateLocked(updated, true)

	if err := s.transactionStore.Update(ctx, &updated); err != nil {
		s.persistFailureLocked("saving the transaction", err)
	}
	if goalsChanged {
		if err := s.goalStore.ReplaceAll(ctx, s.goals); err != nil {
			s.persistFailureLocked("syncing goals", err)
		}
	}
	s.syncNotificationsLocked(ctx)
	s.publishLocked(before)
	return &updated, nil
}

func (s *sessionService) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.notifications

	idx := -1
	for i, tx := range s.transactions {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrTransactionNotFound
	}

	deleted := s.transactions[idx]
	transactions := make([]models.Transaction, 0, len(s.transactions)-1)
	transactions = append(transactions, s.transactions[:idx]...)
	transactions = append(transactions, s.transactions[idx+1:]...)
	s.transactions = transactions

	goals, goalsChanged := engine.ApplyGoalDeletion(s.goals, deleted)
	if goalsChanged {
		s.goals = goals
	}

	if err := s.transactionStore.Delete(ctx, id); err != nil {
		s.persistFailureLocked("deleting the transaction", err)
	}
	if goalsChanged {
		if err := s.goalStore.ReplaceAll(ctx, s.goals); err != nil {
			s.persistFailureLocked("syncing goals", err)
		}
	}
	s.syncNotificationsLocked(ctx)
	s.publishLocked(before)
	return nil
}

// --- bills ---

func (s *sessionService) ListBills() []models.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Bill, len(s.bills))
	copy(out, s.bills)
	return out
}

func (s *sessionService) GetBill(id string) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findBillLocked(id)
}

func (s *sessionService) findBillLocked(id string) (*models.Bill, error) {
	for _, bill := range s.bills {
		if bill.ID == id {
			found := bill
			return &found, nil
		}
	}
	return nil, apperrors.ErrBillNotFound
}

func (s *sessionService) AddBill(ctx context.Context, bill models.Bill) (*models.Bill, error) {
	if bill.DueDay < 1 || bill.DueDay > 31 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due day must be between 1 and 31")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if bill.ID == "" {
		bill.ID = uuid.New()
	}
	bill.CreatedAt = s.now()

	bills := make([]models.Bill, 0, len(s.bills)+1)
	bills = append(bills, s.bills...)
	bills = append(bills, bill)
	s.bills = bills

	if err := s.billStore.ReplaceAll(ctx, s.bills); err != nil {
		s.persistFailureLocked("syncing bills", err)
		s.syncNotificationsLocked(ctx)
	}
	return &bill, nil
}

func (s *sessionService) UpdateBill(ctx context.Context, bill models.Bill) (*models.Bill, error) {
	if bill.DueDay < 1 || bill.DueDay > 31 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due day must be between 1 and 31")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.findBillLocked(bill.ID)
	if err != nil {
		return nil, err
	}
	bill.CreatedAt = existing.CreatedAt
	if bill.LastPaidDate == nil {
		bill.LastPaidDate = existing.LastPaidDate
	}

	bills := make([]models.Bill, len(s.bills))
	copy(bills, s.bills)
	for i := range bills {
		if bills[i].ID == bill.ID {
			bills[i] = bill
			break
		}
	}
	s.bills = bills

	if err := s.billStore.ReplaceAll(ctx, s.bills); err != nil {
		s.persistFailureLocked("syncing bills", err)
		s.syncNotificationsLocked(ctx)
	}
	return &bill, nil
}

func (s *sessionService) DeleteBill(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findBillLocked(id); err != nil {
		return err
	}

	bills := make([]models.Bill, 0, len(s.bills)-1)
	for _, bill := range s.bills {
		if bill.ID != id {
			bills = append(bills, bill)
		}
	}
	s.bills = bills

	if err := s.billStore.ReplaceAll(ctx, s.bills); err != nil {
		s.persistFailureLocked("syncing bills", err)
		s.syncNotificationsLocked(ctx)
	}
	return nil
}

// PayBill records a manual bill payment: a linked expense transaction dated
// today, the bill's last-paid date advanced, and the usual alert evaluation
// for the new transaction.
func (s *sessionService) PayBill(ctx context.Context, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.notifications

	bill, err := s.findBillLocked(id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if bill.PaidInMonth(now) {
		return nil, apperrors.ErrBillAlreadyPaid
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
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

	s.transactions = prependTransaction(s.transactions, tx)

	bills := make([]models.Bill, len(s.bills))
	copy(bills, s.bills)
	for i := range bills {
		if bills[i].ID == id {
			paid := today
			bills[i].LastPaidDate = &paid
			break
		}
	}
	s.bills = bills

	s.notifications = engine.Push(s.notifications, now, models.NotificationTypeInfo,
		"Bill Paid", fmt.Sprintf("You paid %s", bill.Name))
	goalsChanged := s.evaluateLocked(tx, false)

	if err := s.transactionStore.Create(ctx, &tx); err != nil {
		s.persistFailureLocked("saving the payment", err)
	}
	if err := s.billStore.ReplaceAll(ctx, s.bills); err != nil {
		s.persistFailureLocked("syncing bills", err)
	}
	if goalsChanged {
		if err := s.goalStore.ReplaceAll(ctx, s.goals); err != nil {
			s.persistFailureLocked("syncing goals", err)
		}
	}
	s.syncNotificationsLocked(ctx)
	s.publishLocked(before)
	return &tx, nil
}

// --- budgets ---

func (s *sessionService) ListBudgets() []models.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

func (s *sessionService) AddBudget(ctx context.Context, budget models.Budget) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.budgets {
		if b.Category == budget.Category {
			return nil, apperrors.ErrDuplicateBudget
		}
	}

	if budget.ID == "" {
		budget.ID = uuid.New()
	}
	budget.CreatedAt = s.now()

	budgets := make([]models.Budget, 0, len(s.budgets)+1)
	budgets = append(budgets, s.budgets...)
	budgets = append(budgets, budget)
	s.budgets = budgets

	if err := s.budgetStore.ReplaceAll(ctx, s.budgets); err != nil {
		s.persistFailureLocked("syncing budgets", err)
		s.syncNotificationsLocked(ctx)
	}
	return &budget, nil
}

func (s *sessionService) UpdateBudget(ctx context.Context, budget models.Budget) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, b := range s.budgets {
		if b.ID == budget.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.ErrBudgetNotFound
	}
	budget.CreatedAt = s.budgets[idx].CreatedAt

	budgets := make([]models.Budget, len(s.budgets))
	copy(budgets, s.budgets)
	budgets[idx] = budget
	s.budgets = budgets

	if err := s.budgetStore.ReplaceAll(ctx, s.budgets); err != nil {
		s.persistFailureLocked("syncing budgets", err)
		s.syncNotificationsLocked(ctx)
	}
	return &budget, nil
}

func (s *sessionService) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	budgets := make([]models.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		if b.ID == id {
			found = true
			continue
		}
		budgets = append(budgets, b)
	}
	if !found {
		return apperrors.ErrBudgetNotFound
	}
	s.budgets = budgets

	if err := s.budgetStore.ReplaceAll(ctx, s.budgets); err != nil {
		s.persistFailureLocked("syncing budgets", err)
		s.syncNotificationsLocked(ctx)
	}
	return nil
}

// --- goals ---

func (s *sessionService) ListGoals() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

func (s *sessionService) GetGoal(id string) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.goals {
		if g.ID == id {
			found := g
			return &found, nil
		}
	}
	return nil, apperrors.ErrGoalNotFound
}

func (s *sessionService) AddGoal(ctx context.Context, goal models.Goal) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.New()
	}
	goal.CreatedAt = s.now()
	// Progress starts at zero and only moves through linked transactions.
	goal.CurrentAmount = 0

	goals := make([]models.Goal, 0, len(s.goals)+1)
	goals = append(goals, s.goals...)
	goals = append(goals, goal)
	s.goals = goals

	if err := s.goalStore.ReplaceAll(ctx, s.goals); err != nil {
		s.persistFailureLocked("syncing goals", err)
		s.syncNotificationsLocked(ctx)
	}
	return &goal, nil
}

func (s *sessionService) UpdateGoal(ctx context.Context, goal models.Goal) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, g := range s.goals {
		if g.ID == goal.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.ErrGoalNotFound
	}

	existing := s.goals[idx]
	goal.CreatedAt = existing.CreatedAt
	goal.CurrentAmount = existing.CurrentAmount

	goals := make([]models.Goal, len(s.goals))
	copy(goals, s.goals)
	goals[idx] = goal
	s.goals = goals

	if err := s.goalStore.ReplaceAll(ctx, s.goals); err != nil {
		s.persistFailureLocked("syncing goals", err)
		s.syncNotificationsLocked(ctx)
	}
	return &goal, nil
}

func (s *sessionService) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	goals := make([]models.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		if g.ID == id {
			found = true
			continue
		}
		goals = append(goals, g)
	}
	if !found {
		return apperrors.ErrGoalNotFound
	}
	s.goals = goals

	if err := s.goalStore.ReplaceAll(ctx, s.goals); err != nil {
		s.persistFailureLocked("syncing goals", err)
		s.syncNotificationsLocked(ctx)
	}
	return nil
}

// --- notifications ---

func (s *sessionService) ListNotifications(page pagination.PageRequest) pagination.PageResponse[models.AppNotification] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AppNotification, len(s.notifications))
	copy(out, s.notifications)
	return pagination.Slice(out, page)
}

func (s *sessionService) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, notif := range s.notifications {
		if !notif.Read {
			n++
		}
	}
	return n
}

func (s *sessionService) MarkNotificationsRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = engine.MarkAllRead(s.notifications)
	s.syncNotificationsLocked(ctx)
	return nil
}

func (s *sessionService) ClearNotifications(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = engine.Clear()
	s.syncNotificationsLocked(ctx)
	return nil
}

// --- snapshot ---

func (s *sessionService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Transactions: make([]models.Transaction, len(s.transactions)),
		Budgets:      make([]models.Budget, len(s.budgets)),
		Goals:        make([]models.Goal, len(s.goals)),
	}
	copy(snap.Transactions, s.transactions)
	copy(snap.Budgets, s.budgets)
	copy(snap.Goals, s.goals)
	return snap
}

func prependTransaction(list []models.Transaction, tx models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(list)+1)
	out = append(out, tx)
	out = append(out, list...)
	return out
}
