package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loanpilot/backend/internal/services"
	"github.com/loanpilot/backend/internal/utils"
)

type ManagerHandler struct {
	auth   services.AuthService
	review services.ReviewService
}

func NewManagerHandler(auth services.AuthService, review services.ReviewService) *ManagerHandler {
	return &ManagerHandler{auth: auth, review: review}
}

type ManagerLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ManagerLoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *ManagerHandler) Login(c *gin.Context) {
	var req ManagerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ManagerHandler.Login", "invalid request body", err))
		return
	}

	out, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ManagerLoginResponse{Token: out.Token, Name: out.Name, Email: out.Email})
}

func (h *ManagerHandler) ListApplications(c *gin.Context) {
	apps, err := h.review.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ManagerHandler) ApplicationDetail(c *gin.Context) {
	app, err := h.review.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

type DecisionRequest struct {
	ApplicationID string `json:"application_id" binding:"required"`
	ManagerEmail  string `json:"manager_email"`
}

func (h *ManagerHandler) Approve(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ManagerHandler.Approve", "invalid request body", err))
		return
	}

	email := req.ManagerEmail
	if email == "" {
		email = managerEmail(c)
	}

	if err := h.review.Approve(c.Request.Context(), req.ApplicationID, email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application approved successfully"})
}

func (h *ManagerHandler) Reject(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ManagerHandler.Reject", "invalid request body", err))
		return
	}

	email := req.ManagerEmail
	if email == "" {
		email = managerEmail(c)
	}

	if err := h.review.Reject(c.Request.Context(), req.ApplicationID, email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application rejected successfully"})
}
