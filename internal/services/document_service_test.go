package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanpilot/backend/internal/extract"
	"github.com/loanpilot/backend/internal/providers/ocr"
	"github.com/loanpilot/backend/internal/storage"
	"github.com/loanpilot/backend/internal/utils"
)

func newDocumentFixture(t *testing.T) (DocumentService, *fakeApplicationRepo) {
	t.Helper()
	apps := newFakeApplicationRepo()
	svc := NewDocumentService(
		apps,
		storage.NewMockStore("loan-documents", time.Hour),
		ocr.NewMockExtractor(),
		extract.NewBankStatementExtractor(rand.New(rand.NewSource(7))),
		"loan-documents",
		logrus.New(),
	)
	return svc, apps
}

func TestUploadURL(t *testing.T) {
	svc, _ := newDocumentFixture(t)

	target, err := svc.UploadURL(context.Background(), "sess-1", "aadhaar")
	require.NoError(t, err)
	assert.Contains(t, target.URL, "sess-1")
	assert.Equal(t, "loan-documents", target.Bucket)
	assert.Equal(t, "applications/sess-1/aadhaar/document.pdf", target.Key)

	_, err = svc.UploadURL(context.Background(), "", "aadhaar")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestVerifyAadhaar_Verified(t *testing.T) {
	svc, apps := newDocumentFixture(t)
	app := seedApplication(t, apps)
	ctx := context.Background()

	out, err := svc.VerifyAadhaar(ctx, app.SessionID, "Government of India Unique Identification 1234 5678 9012")
	require.NoError(t, err)
	assert.True(t, out.Verified)
	assert.Equal(t, "1234 5678 9012", out.ExtractedData["aadhaar_number"])

	got, err := apps.GetBySessionID(ctx, app.SessionID)
	require.NoError(t, err)
	assert.True(t, got.AadhaarVerified)
}

func TestVerifyAadhaar_Rejected(t *testing.T) {
	svc, apps := newDocumentFixture(t)
	app := seedApplication(t, apps)
	ctx := context.Background()

	out, err := svc.VerifyAadhaar(ctx, app.SessionID, "completely unrelated text")
	require.NoError(t, err)
	assert.False(t, out.Verified)
	assert.Nil(t, out.ExtractedData)

	got, err := apps.GetBySessionID(ctx, app.SessionID)
	require.NoError(t, err)
	assert.False(t, got.AadhaarVerified)
}

func TestVerifyAadhaar_UnknownSession(t *testing.T) {
	svc, _ := newDocumentFixture(t)

	_, err := svc.VerifyAadhaar(context.Background(), uuid.NewString(), "aadhaar 1234 5678 9012")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestProcessBankStatement_ExtractsFigures(t *testing.T) {
	svc, apps := newDocumentFixture(t)
	app := seedApplication(t, apps)
	ctx := context.Background()

	out, err := svc.ProcessBankStatement(ctx, app.SessionID, "Salary Credit: 55,000 EMI: 8,000")
	require.NoError(t, err)
	assert.Equal(t, 55000.0, out.IncomeExtracted)
	assert.Equal(t, 8000.0, out.EMIDetected)

	got, err := apps.GetBySessionID(ctx, app.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got.IncomeExtracted)
	require.NotNil(t, got.EMIDetected)
	assert.Equal(t, 55000.0, *got.IncomeExtracted)
	assert.Equal(t, 8000.0, *got.EMIDetected)
	assert.True(t, got.DocumentsVerified)
}

func TestProcessBankStatement_EmptyTextUsesOCR(t *testing.T) {
	// With no inline text the stored object is OCR'd; the mock extractor
	// returns a statement the income pattern matches.
	svc, apps := newDocumentFixture(t)
	app := seedApplication(t, apps)

	out, err := svc.ProcessBankStatement(context.Background(), app.SessionID, "")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, out.IncomeExtracted)
	assert.Equal(t, 5000.0, out.EMIDetected)
}
