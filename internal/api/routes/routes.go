package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/loanpilot/backend/internal/api/handlers"
	"github.com/loanpilot/backend/internal/api/middleware"
	"github.com/loanpilot/backend/internal/auth"
)

type Deps struct {
	TokenIssuer *auth.TokenIssuer
	Session     *handlers.SessionHandler
	Chat        *handlers.ChatHandler
	Document    *handlers.DocumentHandler
	Predict     *handlers.PredictHandler
	Manager     *handlers.ManagerHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Loan Eligibility API", "version": "1.0.0"})
	})

	// Applicant flow (session id is the credential)
	r.POST("/start-session", d.Session.Start)
	r.POST("/chat-input", d.Chat.ChatInput)
	r.POST("/voice-webhook", d.Chat.VoiceWebhook)
	r.POST("/upload-url", d.Document.UploadURL)
	r.POST("/verify-aadhaar", d.Document.VerifyAadhaar)
	r.POST("/process-bank-statement", d.Document.ProcessBankStatement)
	r.POST("/predict", d.Predict.Predict)
	r.POST("/save-report", d.Session.SaveReport)

	// Manager review surface (JWT)
	r.POST("/manager/login", d.Manager.Login)

	mgr := r.Group("/manager")
	mgr.Use(middleware.ManagerAuth(d.TokenIssuer))

	mgr.GET("/applications", d.Manager.ListApplications)
	mgr.GET("/application/:id", d.Manager.ApplicationDetail)
	mgr.POST("/approve", d.Manager.Approve)
	mgr.POST("/reject", d.Manager.Reject)
}
