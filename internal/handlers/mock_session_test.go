package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- mock session service ---

type mockSessionService struct {
	loadFn func(ctx context.Context) error

	listTransactionsFn  func(page pagination.PageRequest, filter services.TransactionFilter) pagination.PageResponse[models.Transaction]
	getTransactionFn    func(id string) (*models.Transaction, error)
	addTransactionFn    func(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	updateTransactionFn func(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	deleteTransactionFn func(ctx context.Context, id string) error

	listBillsFn  func() []models.Bill
	getBillFn    func(id string) (*models.Bill, error)
	addBillFn    func(ctx context.Context, bill models.Bill) (*models.Bill, error)
	updateBillFn func(ctx context.Context, bill models.Bill) (*models.Bill, error)
	deleteBillFn func(ctx context.Context, id string) error
	payBillFn    func(ctx context.Context, id string) (*models.Transaction, error)

	listBudgetsFn  func() []models.Budget
	addBudgetFn    func(ctx context.Context, budget models.Budget) (*models.Budget, error)
	updateBudgetFn func(ctx context.Context, budget models.Budget) (*models.Budget, error)
	deleteBudgetFn func(ctx context.Context, id string) error

	listGoalsFn  func() []models.Goal
	getGoalFn    func(id string) (*models.Goal, error)
	addGoalFn    func(ctx context.Context, goal models.Goal) (*models.Goal, error)
	updateGoalFn func(ctx context.Context, goal models.Goal) (*models.Goal, error)
	deleteGoalFn func(ctx context.Context, id string) error

	listNotificationsFn     func(page pagination.PageRequest) pagination.PageResponse[models.AppNotification]
	unreadCountFn           func() int
	markNotificationsReadFn func(ctx context.Context) error
	clearNotificationsFn    func(ctx context.Context) error

	snapshotFn func() services.Snapshot
}

func (m *mockSessionService) Load(ctx context.Context) error {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil
}

func (m *mockSessionService) ListTransactions(page pagination.PageRequest, filter services.TransactionFilter) pagination.PageResponse[models.Transaction] {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(page, filter)
	}
	return pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
}

func (m *mockSessionService) GetTransaction(id string) (*models.Transaction, error) {
	if m.getTransactionFn != nil {
		return m.getTransactionFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockSessionService) AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	if m.addTransactionFn != nil {
		return m.addTransactionFn(ctx, tx)
	}
	return &tx, nil
}

func (m *mockSessionService) UpdateTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(ctx, tx)
	}
	return &tx, nil
}

func (m *mockSessionService) DeleteTransaction(ctx context.Context, id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(ctx, id)
	}
	return nil
}

func (m *mockSessionService) ListBills() []models.Bill {
	if m.listBillsFn != nil {
		return m.listBillsFn()
	}
	return []models.Bill{}
}

func (m *mockSessionService) GetBill(id string) (*models.Bill, error) {
	if m.getBillFn != nil {
		return m.getBillFn(id)
	}
	return &models.Bill{}, nil
}

func (m *mockSessionService) AddBill(ctx context.Context, bill models.Bill) (*models.Bill, error) {
	if m.addBillFn != nil {
		return m.addBillFn(ctx, bill)
	}
	return &bill, nil
}

func (m *mockSessionService) UpdateBill(ctx context.Context, bill models.Bill) (*models.Bill, error) {
	if m.updateBillFn != nil {
		return m.updateBillFn(ctx, bill)
	}
	return &bill, nil
}

func (m *mockSessionService) DeleteBill(ctx context.Context, id string) error {
	if m.deleteBillFn != nil {
		return m.deleteBillFn(ctx, id)
	}
	return nil
}

func (m *mockSessionService) PayBill(ctx context.Context, id string) (*models.Transaction, error) {
	if m.payBillFn != nil {
		return m.payBillFn(ctx, id)
	}
	return &models.Transaction{}, nil
}

func (m *mockSessionService) ListBudgets() []models.Budget {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn()
	}
	return []models.Budget{}
}

func (m *mockSessionService) AddBudget(ctx context.Context, budget models.Budget) (*models.Budget, error) {
	if m.addBudgetFn != nil {
		return m.addBudgetFn(ctx, budget)
	}
	return &budget, nil
}

func (m *mockSessionService) UpdateBudget(ctx context.Context, budget models.Budget) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(ctx, budget)
	}
	return &budget, nil
}

func (m *mockSessionService) DeleteBudget(ctx context.Context, id string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(ctx, id)
	}
	return nil
}

func (m *mockSessionService) ListGoals() []models.Goal {
	if m.listGoalsFn != nil {
		return m.listGoalsFn()
	}
	return []models.Goal{}
}

func (m *mockSessionService) GetGoal(id string) (*models.Goal, error) {
	if m.getGoalFn != nil {
		return m.getGoalFn(id)
	}
	return &models.Goal{}, nil
}

func (m *mockSessionService) AddGoal(ctx context.Context, goal models.Goal) (*models.Goal, error) {
	if m.addGoalFn != nil {
		return m.addGoalFn(ctx, goal)
	}
	return &goal, nil
}

func (m *mockSessionService) UpdateGoal(ctx context.Context, goal models.Goal) (*models.Goal, error) {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(ctx, goal)
	}
	return &goal, nil
}

func (m *mockSessionService) DeleteGoal(ctx context.Context, id string) error {
	if m.deleteGoalFn != nil {
		return m.deleteGoalFn(ctx, id)
	}
	return nil
}

func (m *mockSessionService) ListNotifications(page pagination.PageRequest) pagination.PageResponse[models.AppNotification] {
	if m.listNotificationsFn != nil {
		return m.listNotificationsFn(page)
	}
	return pagination.NewPageResponse([]models.AppNotification{}, 1, 20, 0)
}

func (m *mockSessionService) UnreadCount() int {
	if m.unreadCountFn != nil {
		return m.unreadCountFn()
	}
	return 0
}

func (m *mockSessionService) MarkNotificationsRead(ctx context.Context) error {
	if m.markNotificationsReadFn != nil {
		return m.markNotificationsReadFn(ctx)
	}
	return nil
}

func (m *mockSessionService) ClearNotifications(ctx context.Context) error {
	if m.clearNotificationsFn != nil {
		return m.clearNotificationsFn(ctx)
	}
	return nil
}

func (m *mockSessionService) Snapshot() services.Snapshot {
	if m.snapshotFn != nil {
		return m.snapshotFn()
	}
	return services.Snapshot{}
}

func (m *mockSessionService) SetBroadcast(fn func(models.AppNotification)) {}

var _ services.SessionServicer = (*mockSessionService)(nil)

// --- shared test helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}
