package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loanpilot/backend/internal/services"
	"github.com/loanpilot/backend/internal/utils"
)

type DocumentHandler struct {
	svc services.DocumentService
}

func NewDocumentHandler(svc services.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

type UploadURLRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	FileType  string `json:"file_type" binding:"required"` // aadhaar|bank_statement
}

type UploadURLResponse struct {
	UploadURL  string `json:"upload_url"`
	DocumentID string `json:"document_id"`
	ExpiresIn  int64  `json:"expires_in"`
}

func (h *DocumentHandler) UploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentHandler.UploadURL", "invalid request body", err))
		return
	}

	target, err := h.svc.UploadURL(c.Request.Context(), req.SessionID, req.FileType)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		UploadURL:  target.URL,
		DocumentID: uuid.NewString(),
		ExpiresIn:  int64(target.ExpiresIn.Seconds()),
	})
}

type VerifyAadhaarRequest struct {
	SessionID    string `json:"session_id" binding:"required"`
	DocumentText string `json:"document_text"`
}

type VerifyAadhaarResponse struct {
	Verified      bool           `json:"verified"`
	Message       string         `json:"message"`
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
}

func (h *DocumentHandler) VerifyAadhaar(c *gin.Context) {
	var req VerifyAadhaarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentHandler.VerifyAadhaar", "invalid request body", err))
		return
	}

	out, err := h.svc.VerifyAadhaar(c.Request.Context(), req.SessionID, req.DocumentText)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, VerifyAadhaarResponse{
		Verified:      out.Verified,
		Message:       out.Message,
		ExtractedData: out.ExtractedData,
	})
}

type BankStatementRequest struct {
	SessionID    string `json:"session_id" binding:"required"`
	DocumentText string `json:"document_text"`
}

type BankStatementResponse struct {
	IncomeExtracted float64 `json:"income_extracted"`
	EMIDetected     float64 `json:"emi_detected"`
	Message         string  `json:"message"`
}

func (h *DocumentHandler) ProcessBankStatement(c *gin.Context) {
	var req BankStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentHandler.ProcessBankStatement", "invalid request body", err))
		return
	}

	out, err := h.svc.ProcessBankStatement(c.Request.Context(), req.SessionID, req.DocumentText)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BankStatementResponse{
		IncomeExtracted: out.IncomeExtracted,
		EMIDetected:     out.EMIDetected,
		Message:         out.Message,
	})
}
