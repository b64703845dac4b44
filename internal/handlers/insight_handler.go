package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/insights"
	"fintrack/internal/services"
)

// InsightHandler handles AI spending-analysis requests.
type InsightHandler struct {
	session   services.SessionServicer
	generator insights.Generator
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(session services.SessionServicer, generator insights.Generator) *InsightHandler {
	return &InsightHandler{session: session, generator: generator}
}

// GetInsights handles generating a spending analysis from the session data.
// @Summary     Get insights
// @Description Generate an AI spending analysis for the current data
// @Tags        insights
// @Accept      json
// @Produce     json
// @Success     200 {object} insights.Report "Spending analysis"
// @Failure     502 {object} ErrorResponse "Insights unavailable"
// @Router      /insights [get]
func (h *InsightHandler) GetInsights(c *gin.Context) {
	report, err := h.generator.Generate(c.Request.Context(), h.session.Snapshot())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
