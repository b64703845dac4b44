package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

func setupBillRouter(handler *BillHandler) *gin.Engine {
	r := gin.New()
	r.POST("/bills", handler.CreateBill)
	r.GET("/bills", handler.GetBills)
	r.GET("/bills/:id", handler.GetBill)
	r.PUT("/bills/:id", handler.UpdateBill)
	r.DELETE("/bills/:id", handler.DeleteBill)
	r.POST("/bills/:id/pay", handler.PayBill)
	return r
}

func TestBillHandler_CreateBill(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockSessionService{
			addBillFn: func(_ context.Context, bill models.Bill) (*models.Bill, error) {
				bill.ID = uuid.New()
				return &bill, nil
			},
		}
		r := setupBillRouter(NewBillHandler(svc))

		rec := doRequest(r, "POST", "/bills",
			`{"name":"Netflix","amount":1599,"category":"Entertainment","due_day":15,"auto_pay":true,"is_subscription":true}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		bill := result["bill"].(map[string]interface{})
		if bill["name"] != "Netflix" {
			t.Errorf("expected Netflix, got %v", bill["name"])
		}
		if bill["due_day"].(float64) != 15 {
			t.Errorf("expected due_day 15, got %v", bill["due_day"])
		}
	})

	t.Run("returns 400 on due day out of range", func(t *testing.T) {
		r := setupBillRouter(NewBillHandler(&mockSessionService{}))

		rec := doRequest(r, "POST", "/bills",
			`{"name":"Netflix","amount":1599,"category":"Entertainment","due_day":32}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		r := setupBillRouter(NewBillHandler(&mockSessionService{}))

		rec := doRequest(r, "POST", "/bills", `{"name":"Netflix","category":"Entertainment","due_day":15}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestBillHandler_PayBill(t *testing.T) {
	billID := uuid.New()

	t.Run("returns 201 with the payment transaction", func(t *testing.T) {
		svc := &mockSessionService{
			payBillFn: func(_ context.Context, id string) (*models.Transaction, error) {
				tx := models.Transaction{
					Type: models.TransactionTypeExpense, Amount: 1599, Description: "Netflix",
					Category: "Entertainment", Recurring: true, BillID: &id,
				}
				tx.ID = uuid.New()
				return &tx, nil
			},
		}
		r := setupBillRouter(NewBillHandler(svc))

		rec := doRequest(r, "POST", "/bills/"+billID+"/pay", "")

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["bill_id"] != billID {
			t.Errorf("expected bill_id %s, got %v", billID, tx["bill_id"])
		}
	})

	t.Run("returns 409 when already paid", func(t *testing.T) {
		svc := &mockSessionService{
			payBillFn: func(_ context.Context, id string) (*models.Transaction, error) {
				return nil, apperrors.ErrBillAlreadyPaid
			},
		}
		r := setupBillRouter(NewBillHandler(svc))

		rec := doRequest(r, "POST", "/bills/"+billID+"/pay", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		errObj := result["error"].(map[string]interface{})
		if errObj["code"] != "BILL_ALREADY_PAID" {
			t.Errorf("expected BILL_ALREADY_PAID, got %v", errObj["code"])
		}
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupBillRouter(NewBillHandler(&mockSessionService{}))

		rec := doRequest(r, "POST", "/bills/not-a-uuid/pay", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestBillHandler_GetBill(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockSessionService{
			getBillFn: func(id string) (*models.Bill, error) {
				return nil, apperrors.ErrBillNotFound
			},
		}
		r := setupBillRouter(NewBillHandler(svc))

		rec := doRequest(r, "GET", "/bills/"+uuid.New(), "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
