// Package dialogue implements the scripted slot-filling conversation over a
// loan application. The current step is always derived from the first unset
// slot on the record, so the record stays the single source of truth.
package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loanpilot/backend/internal/models"
)

type Step int

const (
	StepName Step = iota
	StepIncome
	StepLoanAmount
	StepEmployment
	StepCreditScore
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepName:
		return "await_name"
	case StepIncome:
		return "await_income"
	case StepLoanAmount:
		return "await_loan_amount"
	case StepEmployment:
		return "await_employment"
	case StepCreditScore:
		return "await_credit_score"
	default:
		return "complete"
	}
}

// NextStepUploadDocuments is signalled once all slots are filled.
const NextStepUploadDocuments = "upload_documents"

const (
	promptIncome     = "What is your monthly income?"
	promptLoanAmount = "Great! How much loan amount are you looking for?"
	promptEmployment = "What is your employment type? (e.g., Salaried, Self-Employed, Business)"
	promptCredit     = "What is your credit score? (If you don't know, you can estimate between 300-900)"

	replyInvalidIncome     = "Please enter a valid income amount (e.g., 50000)"
	replyInvalidLoanAmount = "Please enter a valid loan amount (e.g., 500000)"
	replyInvalidCredit     = "Please enter a valid credit score (e.g., 750)"
	replyCreditOutOfRange  = "Credit score should be between 300 and 900. Please enter a valid score."

	replyAllCollected = "Thank you! I have collected all the information. Next, please upload your Aadhaar and bank statement for verification."
	replyComplete     = "Your information is complete. Please proceed to document upload."
)

// GreetingChat opens a chat-channel session; GreetingVoice any other channel.
const (
	GreetingChat  = "Hello! Welcome to our loan application system. What is your name?"
	GreetingVoice = "Voice session started. Please provide your information."
)

// Result of one conversation turn. Updates is the column patch to apply to
// the application; it is empty when validation failed and the turn re-prompts.
type Result struct {
	Reply    string
	NextStep string
	Updates  map[string]any
}

// StepFor derives the conversation step from the record (first-unset-slot
// rule).
func StepFor(app *models.Application) Step {
	switch {
	case app.Name == nil || *app.Name == "":
		return StepName
	case app.IncomeClaimed == nil:
		return StepIncome
	case app.LoanAmount == nil:
		return StepLoanAmount
	case app.EmploymentType == nil || *app.EmploymentType == "":
		return StepEmployment
	case app.CreditScore == nil:
		return StepCreditScore
	default:
		return StepComplete
	}
}

// Advance consumes one user input against the current step. It never mutates
// app; persisting Updates is the caller's job.
func Advance(app *models.Application, input string) Result {
	switch StepFor(app) {
	case StepName:
		name := input
		return Result{
			Reply:   fmt.Sprintf("Nice to meet you, %s! %s", name, promptIncome),
			Updates: map[string]any{"name": name},
		}

	case StepIncome:
		income, ok := parseAmount(input)
		if !ok {
			return Result{Reply: replyInvalidIncome}
		}
		return Result{
			Reply:   promptLoanAmount,
			Updates: map[string]any{"income_claimed": income},
		}

	case StepLoanAmount:
		amount, ok := parseAmount(input)
		if !ok {
			return Result{Reply: replyInvalidLoanAmount}
		}
		return Result{
			Reply:   promptEmployment,
			Updates: map[string]any{"loan_amount": amount},
		}

	case StepEmployment:
		return Result{
			Reply:   promptCredit,
			Updates: map[string]any{"employment_type": input},
		}

	case StepCreditScore:
		score, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return Result{Reply: replyInvalidCredit}
		}
		if score < 300 || score > 900 {
			return Result{Reply: replyCreditOutOfRange}
		}
		return Result{
			Reply:    replyAllCollected,
			NextStep: NextStepUploadDocuments,
			Updates:  map[string]any{"credit_score": score},
		}

	default:
		// Complete state is idempotent: any further input is ignored.
		return Result{
			Reply:    replyComplete,
			NextStep: NextStepUploadDocuments,
		}
	}
}

// parseAmount accepts "55,000", "₹50000", "$1200.50" and the like. Negative
// amounts are rejected.
func parseAmount(s string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", "₹", "", "$", "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
