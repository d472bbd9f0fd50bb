package storage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Store struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

func NewS3Store(ctx context.Context, region, bucket string, expiry time.Duration) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		expiry:    expiry,
	}, nil
}

func (s *S3Store) PresignUpload(ctx context.Context, sessionID, fileType string) (UploadTarget, error) {
	key := ObjectKey(sessionID, fileType)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return UploadTarget{}, err
	}

	return UploadTarget{
		URL:       req.URL,
		Bucket:    s.bucket,
		Key:       key,
		ExpiresIn: s.expiry,
	}, nil
}
