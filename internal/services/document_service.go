package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/loanpilot/backend/internal/extract"
	"github.com/loanpilot/backend/internal/providers/ocr"
	pgrepo "github.com/loanpilot/backend/internal/repositories/postgres"
	"github.com/loanpilot/backend/internal/storage"
	"github.com/loanpilot/backend/internal/utils"
)

const (
	msgAadhaarVerified   = "Aadhaar verification successful"
	msgAadhaarRejected   = "Could not verify Aadhaar document. Please upload a valid Aadhaar card."
	msgStatementAccepted = "Bank statement processed successfully"
)

type AadhaarOutcome struct {
	Verified      bool
	Message       string
	ExtractedData map[string]any
}

type BankStatementOutcome struct {
	IncomeExtracted float64
	EMIDetected     float64
	Message         string
}

type DocumentService interface {
	UploadURL(ctx context.Context, sessionID, fileType string) (storage.UploadTarget, error)
	VerifyAadhaar(ctx context.Context, sessionID, documentText string) (AadhaarOutcome, error)
	ProcessBankStatement(ctx context.Context, sessionID, documentText string) (BankStatementOutcome, error)
}

type documentService struct {
	apps      pgrepo.ApplicationRepo
	store     storage.ObjectStore
	ocrClient ocr.Extractor
	statement *extract.BankStatementExtractor
	bucket    string
	log       *logrus.Logger
}

func NewDocumentService(
	apps pgrepo.ApplicationRepo,
	store storage.ObjectStore,
	ocrClient ocr.Extractor,
	statement *extract.BankStatementExtractor,
	bucket string,
	log *logrus.Logger,
) DocumentService {
	return &documentService{
		apps:      apps,
		store:     store,
		ocrClient: ocrClient,
		statement: statement,
		bucket:    bucket,
		log:       log,
	}
}

func (s *documentService) UploadURL(ctx context.Context, sessionID, fileType string) (storage.UploadTarget, error) {
	const op = "DocumentService.UploadURL"

	if sessionID == "" || fileType == "" {
		return storage.UploadTarget{}, utils.E(utils.CodeInvalidArgument, op, "session_id and file_type are required", nil)
	}
	target, err := s.store.PresignUpload(ctx, sessionID, fileType)
	if err != nil {
		return storage.UploadTarget{}, utils.E(utils.CodeUnavailable, op, "failed to presign upload", err)
	}
	return target, nil
}

func (s *documentService) VerifyAadhaar(ctx context.Context, sessionID, documentText string) (AadhaarOutcome, error) {
	const op = "DocumentService.VerifyAadhaar"

	if sessionID == "" {
		return AadhaarOutcome{}, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	text := s.resolveText(ctx, sessionID, "aadhaar", documentText)
	result := extract.VerifyAadhaar(text)

	err := s.apps.UpdateBySessionID(ctx, sessionID, map[string]any{
		"aadhaar_verified": result.Verified,
		"updated_at":       time.Now().UTC(),
	})
	if errors.Is(err, utils.ErrNotFound) {
		return AadhaarOutcome{}, utils.E(utils.CodeNotFound, op, "application not found", err)
	}
	if err != nil {
		return AadhaarOutcome{}, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}

	if !result.Verified {
		return AadhaarOutcome{Message: msgAadhaarRejected}, nil
	}
	return AadhaarOutcome{
		Verified: true,
		Message:  msgAadhaarVerified,
		ExtractedData: map[string]any{
			"document_type":  "aadhaar",
			"verified":       true,
			"aadhaar_number": result.AadhaarNumber,
		},
	}, nil
}

func (s *documentService) ProcessBankStatement(ctx context.Context, sessionID, documentText string) (BankStatementOutcome, error) {
	const op = "DocumentService.ProcessBankStatement"

	if sessionID == "" {
		return BankStatementOutcome{}, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	text := s.resolveText(ctx, sessionID, "bank_statement", documentText)
	result := s.statement.Process(text)

	err := s.apps.UpdateBySessionID(ctx, sessionID, map[string]any{
		"income_extracted":   result.IncomeExtracted,
		"emi_detected":       result.EMIDetected,
		"documents_verified": true,
		"updated_at":         time.Now().UTC(),
	})
	if errors.Is(err, utils.ErrNotFound) {
		return BankStatementOutcome{}, utils.E(utils.CodeNotFound, op, "application not found", err)
	}
	if err != nil {
		return BankStatementOutcome{}, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}

	return BankStatementOutcome{
		IncomeExtracted: result.IncomeExtracted,
		EMIDetected:     result.EMIDetected,
		Message:         msgStatementAccepted,
	}, nil
}

// resolveText prefers the caller-supplied text; without it the stored
// document is OCR'd. OCR failure degrades to empty text (the extractors'
// fallbacks take over) instead of failing the request.
func (s *documentService) resolveText(ctx context.Context, sessionID, fileType, documentText string) string {
	if documentText != "" {
		return documentText
	}
	text, _, err := s.ocrClient.ExtractText(ctx, s.bucket, storage.ObjectKey(sessionID, fileType))
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("ocr failed, continuing with empty text")
		return ""
	}
	return text
}
