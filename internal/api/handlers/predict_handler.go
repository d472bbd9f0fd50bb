package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loanpilot/backend/internal/scoring"
	"github.com/loanpilot/backend/internal/services"
	"github.com/loanpilot/backend/internal/utils"
)

type PredictHandler struct {
	svc services.PredictionService
}

func NewPredictHandler(svc services.PredictionService) *PredictHandler {
	return &PredictHandler{svc: svc}
}

type PredictRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type PredictResponse struct {
	EligibilityScore float64          `json:"eligibility_score"`
	Eligible         bool             `json:"eligible"`
	Message          string           `json:"message"`
	ShapExplanation  []scoring.Factor `json:"shap_explanation"`
}

func (h *PredictHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "PredictHandler.Predict", "invalid request body", err))
		return
	}

	out, err := h.svc.Predict(c.Request.Context(), req.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PredictResponse{
		EligibilityScore: out.EligibilityScore,
		Eligible:         out.Eligible,
		Message:          out.Message,
		ShapExplanation:  out.Factors,
	})
}
