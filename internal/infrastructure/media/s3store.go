// Package media stores uploaded files in S3-compatible object storage.
package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appmedia "github.com/oysterbuild/backend/internal/application/media"
	"github.com/oysterbuild/backend/internal/shared/config"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// S3Store uploads media objects and returns their public URLs. Works against
// AWS S3 and S3-compatible providers via a custom endpoint.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    logger.Interface
}

// NewS3Store builds the store from media configuration.
func NewS3Store(ctx context.Context, cfg *config.MediaConfig, logger logger.Interface) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Path-style addressing is required by most S3-compatible
			// providers.
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		logger:    logger,
	}, nil
}

var _ appmedia.Store = (*S3Store)(nil)

// Upload writes the object and returns the URL persisted on upload rows.
func (s *S3Store) Upload(ctx context.Context, in appmedia.UploadInput) (string, error) {
	key := in.PublicID
	if in.Folder != "" {
		key = in.Folder + "/" + in.PublicID
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(in.Data),
		ContentType: aws.String(in.ContentType),
	})
	if err != nil {
		s.logger.Errorw("object upload failed",
			"bucket", s.bucket,
			"key", key,
			"error", err,
		)
		return "", fmt.Errorf("failed to upload media object: %w", err)
	}

	s.logger.Debugw("object uploaded",
		"bucket", s.bucket,
		"key", key,
		"size", len(in.Data),
	)
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}
