package ocr

import "context"

// Extractor reads document text out of a stored object. Both impls are
// selected at construction time; the request path never branches on a flag.
type Extractor interface {
	ExtractText(ctx context.Context, bucket, key string) (text string, confidence float64, err error)
}
