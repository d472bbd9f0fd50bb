package storage

import (
	"context"
	"time"
)

// UploadTarget is a time-limited destination for a direct document upload.
type UploadTarget struct {
	URL       string
	Bucket    string
	Key       string
	ExpiresIn time.Duration
}

// ObjectStore hands out presigned upload URLs for applicant documents.
type ObjectStore interface {
	PresignUpload(ctx context.Context, sessionID, fileType string) (UploadTarget, error)
}

// ObjectKey is the canonical layout for application documents.
func ObjectKey(sessionID, fileType string) string {
	return "applications/" + sessionID + "/" + fileType + "/document.pdf"
}
