package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loanpilot/backend/internal/services"
	"github.com/loanpilot/backend/internal/utils"
)

type SessionHandler struct {
	svc services.SessionService
}

func NewSessionHandler(svc services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type StartSessionRequest struct {
	Channel string `json:"channel" binding:"required"` // chat|voice
}

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (h *SessionHandler) Start(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Start", "invalid request body", err))
		return
	}

	app, greeting, err := h.svc.Start(c.Request.Context(), req.Channel)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StartSessionResponse{
		SessionID: app.SessionID,
		Message:   greeting,
	})
}

type SaveReportRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

func (h *SessionHandler) SaveReport(c *gin.Context) {
	var req SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.SaveReport", "invalid request body", err))
		return
	}

	if err := h.svc.SaveReport(c.Request.Context(), req.SessionID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report saved successfully"})
}
