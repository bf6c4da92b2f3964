package interfaces

import (
	"context"
	"time"
)

// IBlobStore abstracts S3 object storage for signature images and consent
// PDFs. Objects are referenced on the Enrollment by key, never embedded.

type IBlobStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (ref string, err error)
	Get(ctx context.Context, ref string) ([]byte, error)
	PresignGet(ctx context.Context, ref string, expires time.Duration) (url string, err error)
}
