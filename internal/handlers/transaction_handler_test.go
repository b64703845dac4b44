package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
	"fintrack/internal/uuid"
)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/:id", handler.GetTransaction)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockSessionService{
			addTransactionFn: func(_ context.Context, tx models.Transaction) (*models.Transaction, error) {
				tx.ID = uuid.New()
				return &tx, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","amount":4599,"description":"Groceries","category":"Food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["description"] != "Groceries" {
			t.Errorf("expected Groceries, got %v", tx["description"])
		}
		if tx["amount"].(float64) != 4599 {
			t.Errorf("expected amount 4599, got %v", tx["amount"])
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockSessionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"transfer","amount":4599,"description":"Groceries","category":"Food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockSessionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","amount":0,"description":"Groceries","category":"Food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes filters through to the session", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		svc := &mockSessionService{
			listTransactionsFn: func(page pagination.PageRequest, filter services.TransactionFilter) pagination.PageResponse[models.Transaction] {
				gotFilter = filter
				return pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions?type=expense&category=Food&min_amount=100", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeExpense {
			t.Error("expected type filter to be passed through")
		}
		if gotFilter.Category == nil || *gotFilter.Category != "Food" {
			t.Error("expected category filter to be passed through")
		}
		if gotFilter.MinAmount == nil || *gotFilter.MinAmount != 100 {
			t.Error("expected min_amount filter to be passed through")
		}
	})

	t.Run("returns 400 on invalid page size", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockSessionService{}))

		rec := doRequest(r, "GET", "/transactions?page_size=9999", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockSessionService{
			deleteTransactionFn: func(_ context.Context, id string) error {
				return apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "DELETE", "/transactions/"+uuid.New(), "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		errObj := result["error"].(map[string]interface{})
		if errObj["code"] != "TRANSACTION_NOT_FOUND" {
			t.Errorf("expected TRANSACTION_NOT_FOUND, got %v", errObj["code"])
		}
	})

	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockSessionService{}))

		rec := doRequest(r, "DELETE", "/transactions/"+uuid.New(), "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
