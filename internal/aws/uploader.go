package aws

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores note files in an S3 bucket and hands back the object URL.
type Uploader struct {
	S3     S3API
	Bucket string
	Region string
}

// NewUploader returns an Uploader bound to a bucket.
func NewUploader(s3Client S3API, bucket, region string) *Uploader {
	return &Uploader{
		S3:     s3Client,
		Bucket: bucket,
		Region: region,
	}
}

// Upload writes the object and returns its URL. The URL is treated as opaque
// by the rest of the system.
func (u *Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: &u.Bucket,
		Key:    &key,
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}
	if _, err := u.S3.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Bucket, u.Region, key), nil
}
