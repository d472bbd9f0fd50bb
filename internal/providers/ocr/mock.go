package ocr

import "context"

// MockExtractor returns a fixed synthetic document so the pipeline works
// without AWS credentials.
type MockExtractor struct{}

func NewMockExtractor() *MockExtractor { return &MockExtractor{} }

func (m *MockExtractor) ExtractText(ctx context.Context, bucket, key string) (string, float64, error) {
	return "Mock Textract Extraction: Name: John Doe\nIncome: 50000\nEMI: 5000", 0.95, nil
}
