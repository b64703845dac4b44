package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// WSHandler pushes new notifications to connected websocket clients.
type WSHandler struct {
	m *melody.Melody
}

// NewWSHandler creates a new WSHandler with keep-alive configured for
// cloud hosts that drop idle connections.
func NewWSHandler() *WSHandler {
	m := melody.New()
	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		logger.Get().Infow("websocket client connected", "remote", s.Request.RemoteAddr)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		logger.Get().Infow("websocket client disconnected", "remote", s.Request.RemoteAddr)
	})
	m.HandleError(func(s *melody.Session, err error) {
		logger.Get().Warnw("websocket error", "error", err)
	})

	return &WSHandler{m: m}
}

// Connect upgrades the request to a websocket session.
// @Summary     Notification stream
// @Description Upgrade to a websocket that receives each new notification as JSON
// @Tags        notifications
// @Router      /ws [get]
func (h *WSHandler) Connect(c *gin.Context) {
	if err := h.m.HandleRequest(c.Writer, c.Request); err != nil {
		logger.Get().Warnw("websocket upgrade failed", "error", err)
	}
}

// Broadcast sends a notification to every connected client. It is wired as
// the session service's broadcast hook.
func (h *WSHandler) Broadcast(n models.AppNotification) {
	msg, err := json.Marshal(n)
	if err != nil {
		logger.Get().Warnw("failed to encode notification", "error", err)
		return
	}
	if err := h.m.Broadcast(msg); err != nil {
		logger.Get().Warnw("failed to broadcast notification", "error", err)
	}
}

// Close shuts down all websocket sessions.
func (h *WSHandler) Close() error {
	return h.m.Close()
}
