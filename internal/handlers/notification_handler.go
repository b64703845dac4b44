package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// NotificationHandler handles notification feed requests.
type NotificationHandler struct {
	session services.SessionServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(session services.SessionServicer) *NotificationHandler {
	return &NotificationHandler{session: session}
}

// GetNotifications handles listing notifications.
// @Summary     Get notifications
// @Description Get a paginated list of notifications, newest first
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AppNotification] "Paginated notifications"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result := h.session.ListNotifications(page)
	c.JSON(http.StatusOK, gin.H{
		"notifications": result,
		"unread_count":  h.session.UnreadCount(),
	})
}

// MarkAllRead handles marking every notification as read.
// @Summary     Mark notifications read
// @Description Mark all notifications as read
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Success     200 {object} MessageResponse "Notifications marked read"
// @Router      /notifications/read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.session.MarkNotificationsRead(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// Clear handles removing every notification.
// @Summary     Clear notifications
// @Description Remove all notifications
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Success     200 {object} MessageResponse "Notifications cleared"
// @Router      /notifications [delete]
func (h *NotificationHandler) Clear(c *gin.Context) {
	if err := h.session.ClearNotifications(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications cleared"})
}
