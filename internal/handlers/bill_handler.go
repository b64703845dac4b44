package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// BillHandler handles recurring-bill requests.
type BillHandler struct {
	session services.SessionServicer
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(session services.SessionServicer) *BillHandler {
	return &BillHandler{session: session}
}

// CreateBillRequest represents the request payload for creating a bill.
type CreateBillRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	Category       string `json:"category" binding:"required,min=1,max=100"`
	DueDay         int    `json:"due_day" binding:"required,due_day"`
	AutoPay        bool   `json:"auto_pay"`
	IsSubscription bool   `json:"is_subscription"`
}

// UpdateBillRequest represents the request payload for updating a bill.
type UpdateBillRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	Category       string `json:"category" binding:"required,min=1,max=100"`
	DueDay         int    `json:"due_day" binding:"required,due_day"`
	AutoPay        bool   `json:"auto_pay"`
	IsSubscription bool   `json:"is_subscription"`
}

// CreateBill handles the creation of a new recurring bill.
// @Summary     Create a bill
// @Description Create a new recurring bill or subscription
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       request body CreateBillRequest true "Bill details"
// @Success     201 {object} models.Bill "Bill created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.session.AddBill(c.Request.Context(), models.Bill{
		Name:           req.Name,
		Amount:         req.Amount,
		Category:       req.Category,
		DueDay:         req.DueDay,
		AutoPay:        req.AutoPay,
		IsSubscription: req.IsSubscription,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// GetBills handles listing all bills.
// @Summary     Get bills
// @Description Get all recurring bills
// @Tags        bills
// @Accept      json
// @Produce     json
// @Success     200 {array} models.Bill "Bills"
// @Router      /bills [get]
func (h *BillHandler) GetBills(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bills": h.session.ListBills()})
}

// GetBill handles retrieving a specific bill.
// @Summary     Get bill by ID
// @Description Get a specific bill by ID
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       id path string true "Bill ID"
// @Success     200 {object} models.Bill "Bill details"
// @Failure     400 {object} ErrorResponse "Invalid bill ID"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.session.GetBill(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// UpdateBill handles updating an existing bill.
// @Summary     Update bill
// @Description Update an existing bill; the payment history is preserved
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       id      path string            true "Bill ID"
// @Param       request body UpdateBillRequest true "Updated bill details"
// @Success     200 {object} models.Bill "Updated bill"
// @Failure     400 {object} ErrorResponse "Invalid input or bill ID"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /bills/{id} [put]
func (h *BillHandler) UpdateBill(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill := models.Bill{
		Name:           req.Name,
		Amount:         req.Amount,
		Category:       req.Category,
		DueDay:         req.DueDay,
		AutoPay:        req.AutoPay,
		IsSubscription: req.IsSubscription,
	}
	bill.ID = id

	updated, err := h.session.UpdateBill(c.Request.Context(), bill)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": updated})
}

// DeleteBill handles deleting a bill.
// @Summary     Delete bill
// @Description Delete a bill by ID
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       id path string true "Bill ID"
// @Success     200 {object} MessageResponse "Bill deleted"
// @Failure     400 {object} ErrorResponse "Invalid bill ID"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.session.DeleteBill(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}

// PayBill handles recording a manual payment for a bill.
// @Summary     Pay bill
// @Description Record a manual payment for the current month
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       id path string true "Bill ID"
// @Success     201 {object} models.Transaction "Payment transaction"
// @Failure     400 {object} ErrorResponse "Invalid bill ID"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     409 {object} ErrorResponse "Bill already paid this month"
// @Router      /bills/{id}/pay [post]
func (h *BillHandler) PayBill(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.session.PayBill(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}
