package storage

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"time"

	"paylink/internal/infrastructure/database"
	"paylink/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultConsentBucket = "paylink-consent"

// S3BlobStore holds signature images and consent PDFs. Objects are private;
// the only external access path is a short-lived presigned GET issued to the
// admin surface.

type S3BlobStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

var _ interfaces.IBlobStore = (*S3BlobStore)(nil)

// NewS3BlobStore creates the blob store from environment variables.
//
// Supported env vars:
//   - CONSENT_BUCKET (default: paylink-consent)
//   - S3_ENDPOINT (optional; MinIO and friends need path-style addressing)
func NewS3BlobStore(ctx context.Context) (*S3BlobStore, error) {
	cfg, err := database.NewAWSConfigFromEnv(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := os.Getenv("S3_ENDPOINT")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	bucket := os.Getenv("CONSENT_BUCKET")
	if bucket == "" {
		bucket = defaultConsentBucket
	}
	log.Printf("[storage][s3] blob store initialized bucket=%s", bucket)

	return &S3BlobStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

func (s *S3BlobStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3BlobStore) Get(ctx context.Context, ref string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3BlobStore) PresignGet(ctx context.Context, ref string, expires time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
