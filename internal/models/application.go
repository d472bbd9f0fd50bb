package models

import (
	"time"

	"gorm.io/datatypes"
)

// Application final_status values. The scorer moves pending to eligible or
// needs_review; a manager decision is terminal.
const (
	StatusPending     = "pending"
	StatusEligible    = "eligible"
	StatusNeedsReview = "needs_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

// Application is one loan application, keyed by the conversation session.
// The conversation slots (Name through CreditScore) are nullable and filled
// strictly in order; conversation progress is derived from the first unset
// slot rather than stored separately.
type Application struct {
	ID        string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID string `gorm:"column:session_id;type:uuid;uniqueIndex" json:"session_id"`
	Channel   string `gorm:"column:channel;type:text" json:"channel"` // "chat" | "voice"

	Name           *string  `gorm:"column:name;type:text" json:"name"`
	IncomeClaimed  *float64 `gorm:"column:income_claimed" json:"income_claimed"`
	LoanAmount     *float64 `gorm:"column:loan_amount" json:"loan_amount"`
	EmploymentType *string  `gorm:"column:employment_type;type:text" json:"employment_type"`
	CreditScore    *int     `gorm:"column:credit_score" json:"credit_score"`

	IncomeExtracted *float64 `gorm:"column:income_extracted" json:"income_extracted"`
	EMIDetected     *float64 `gorm:"column:emi_detected" json:"emi_detected"`

	AadhaarVerified   bool `gorm:"column:aadhaar_verified;default:false" json:"aadhaar_verified"`
	DocumentsVerified bool `gorm:"column:documents_verified;default:false" json:"documents_verified"`

	EligibilityScore *float64       `gorm:"column:eligibility_score" json:"eligibility_score"`
	ShapExplanation  datatypes.JSON `gorm:"column:shap_explanation;type:jsonb" json:"shap_explanation"`
	FinalStatus      string         `gorm:"column:final_status;type:text;default:pending" json:"final_status"`

	AadhaarDocumentURL *string `gorm:"column:aadhaar_document_url;type:text" json:"aadhaar_document_url"`
	BankStatementURL   *string `gorm:"column:bank_statement_url;type:text" json:"bank_statement_url"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }
