package ocr

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

type TextractExtractor struct {
	client *textract.Client
}

func NewTextractExtractor(ctx context.Context, region string) (*TextractExtractor, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &TextractExtractor{client: textract.NewFromConfig(cfg)}, nil
}

func (t *TextractExtractor) ExtractText(ctx context.Context, bucket, key string) (string, float64, error) {
	out, err := t.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return "", 0, err
	}

	var lines []string
	confidence := 0.95
	for i, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine {
			continue
		}
		if block.Text != nil {
			lines = append(lines, *block.Text)
		}
		if i == 0 && block.Confidence != nil {
			confidence = float64(*block.Confidence)
		}
	}
	return strings.Join(lines, "\n"), confidence, nil
}
