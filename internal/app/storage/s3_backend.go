package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DefaultPresignTTL is how long a redirect issued by S3Backend.Serve stays valid.
const DefaultPresignTTL = 15 * time.Minute

// S3Config holds the settings for an S3-compatible bucket.
type S3Config struct {
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string

	// PresignTTL defaults to DefaultPresignTTL.
	PresignTTL time.Duration
}

// S3Backend stores images as objects in an S3-compatible bucket and serves them
// through short-lived presigned GET redirects.
type S3Backend struct {
	bucket     string
	presignTTL time.Duration
	client     *s3.Client
	uploader   *manager.Uploader
	presigner  *s3.PresignClient
}

// NewS3Backend initializes the S3 client using a custom configuration that supports
// S3-compatible endpoints (path-style addressing, static credentials).
func NewS3Backend(ctx context.Context, cfg S3Config) (*S3Backend, error) {
	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client configuration: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}

	return &S3Backend{
		bucket:     cfg.Bucket,
		presignTTL: ttl,
		client:     client,
		uploader:   manager.NewUploader(client),
		presigner:  s3.NewPresignClient(client),
	}, nil
}

// Put uploads body as the object name.
func (b *S3Backend) Put(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	_, err := b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(name),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s: %w", name, err)
	}
	return nil
}

// Delete removes the object. S3 reports success for missing keys.
func (b *S3Backend) Delete(ctx context.Context, name string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", name, err)
	}
	return nil
}

// Serve checks that the object exists and redirects to a presigned download URL.
func (b *S3Backend) Serve(w http.ResponseWriter, r *http.Request, name string) error {
	_, err := b.client.HeadObject(r.Context(), &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return ErrNotFound
		}
		return fmt.Errorf("s3 head %s: %w", name, err)
	}

	presigned, err := b.presigner.PresignGetObject(r.Context(), &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	}, s3.WithPresignExpires(b.presignTTL))
	if err != nil {
		return fmt.Errorf("s3 presign %s: %w", name, err)
	}

	http.Redirect(w, r, presigned.URL, http.StatusFound)
	return nil
}
