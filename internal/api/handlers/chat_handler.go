package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loanpilot/backend/internal/services"
	"github.com/loanpilot/backend/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatInputRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
	NextStep string `json:"next_step,omitempty"`
}

func (h *ChatHandler) ChatInput(c *gin.Context) {
	var req ChatInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.ChatInput", "invalid request body", err))
		return
	}

	turn, err := h.svc.ProcessMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: turn.Response, NextStep: turn.NextStep})
}

type VoiceWebhookRequest struct {
	SessionID  string `json:"session_id" binding:"required"`
	Transcript string `json:"transcript" binding:"required"`
	CallID     string `json:"call_id"`
}

// VoiceWebhook routes a finished transcript through the same state machine
// as chat input.
func (h *ChatHandler) VoiceWebhook(c *gin.Context) {
	var req VoiceWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.VoiceWebhook", "invalid request body", err))
		return
	}

	turn, err := h.svc.ProcessMessage(c.Request.Context(), req.SessionID, req.Transcript)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: turn.Response, NextStep: turn.NextStep})
}
