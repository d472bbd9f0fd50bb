package storage

import (
	"context"
	"fmt"
	"time"
)

// MockStore yields clearly-labeled synthetic URLs so the upload flow can be
// exercised without a bucket.
type MockStore struct {
	bucket string
	expiry time.Duration
}

func NewMockStore(bucket string, expiry time.Duration) *MockStore {
	return &MockStore{bucket: bucket, expiry: expiry}
}

func (s *MockStore) PresignUpload(_ context.Context, sessionID, fileType string) (UploadTarget, error) {
	return UploadTarget{
		URL:       fmt.Sprintf("https://mock-s3-%s.s3.amazonaws.com/%s/%s", s.bucket, sessionID, fileType),
		Bucket:    s.bucket,
		Key:       ObjectKey(sessionID, fileType),
		ExpiresIn: s.expiry,
	}, nil
}
