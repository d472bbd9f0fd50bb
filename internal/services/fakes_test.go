package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/loanpilot/backend/internal/models"
	"github.com/loanpilot/backend/internal/utils"
)

// In-memory repo fakes shared by the service tests.

type fakeApplicationRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Application // keyed by session id
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{rows: make(map[string]*models.Application)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *app
	r.rows[app.SessionID] = &cp
	return nil
}

func (r *fakeApplicationRepo) GetBySessionID(_ context.Context, sessionID string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[sessionID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeApplicationRepo) UpdateBySessionID(_ context.Context, sessionID string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[sessionID]
	if !ok {
		return utils.ErrNotFound
	}
	applyFields(row, fields)
	return nil
}

func (r *fakeApplicationRepo) UpdateByID(_ context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			applyFields(row, fields)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (r *fakeApplicationRepo) ListNewestFirst(_ context.Context) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Application, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, *row)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func applyFields(row *models.Application, fields map[string]any) {
	for col, v := range fields {
		switch col {
		case "name":
			s := v.(string)
			row.Name = &s
		case "income_claimed":
			f := v.(float64)
			row.IncomeClaimed = &f
		case "loan_amount":
			f := v.(float64)
			row.LoanAmount = &f
		case "employment_type":
			s := v.(string)
			row.EmploymentType = &s
		case "credit_score":
			n := v.(int)
			row.CreditScore = &n
		case "income_extracted":
			f := v.(float64)
			row.IncomeExtracted = &f
		case "emi_detected":
			f := v.(float64)
			row.EMIDetected = &f
		case "aadhaar_verified":
			row.AadhaarVerified = v.(bool)
		case "documents_verified":
			row.DocumentsVerified = v.(bool)
		case "eligibility_score":
			f := v.(float64)
			row.EligibilityScore = &f
		case "shap_explanation":
			row.ShapExplanation = datatypes.JSON(v.([]byte))
		case "final_status":
			row.FinalStatus = v.(string)
		case "updated_at":
			row.UpdatedAt = v.(time.Time)
		}
	}
}

type fakeChatHistoryRepo struct {
	mu   sync.Mutex
	rows []models.ChatMessage
}

func (r *fakeChatHistoryRepo) Insert(_ context.Context, msg *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *msg)
	return nil
}

func (r *fakeChatHistoryRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ChatMessage
	for _, m := range r.rows {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeManagerRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Manager // keyed by email
}

func newFakeManagerRepo() *fakeManagerRepo {
	return &fakeManagerRepo{rows: make(map[string]*models.Manager)}
}

func (r *fakeManagerRepo) Create(_ context.Context, m *models.Manager) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.rows[m.Email] = &cp
	return nil
}

func (r *fakeManagerRepo) GetByEmail(_ context.Context, email string) (*models.Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[email]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	emails []string // "to|subject"
	sms    []string
}

func (n *fakeNotifier) SendSMS(_ context.Context, phoneNumber, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sms = append(n.sms, phoneNumber)
	return nil
}

func (n *fakeNotifier) SendEmail(_ context.Context, to, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, to+"|"+subject)
	return nil
}
