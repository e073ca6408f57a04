package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/face-rate/api-go/config"
)

// MediaStore holds profile pictures. Keys are composed by the caller
// (one deterministic "{username}.jpg" object per user, overwritten in place).
type MediaStore interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) error
	Exists(ctx context.Context, key string) (bool, error)
}

type R2MediaStore struct {
	Client *s3.Client
	Config *config.MediaConfig
}

func NewR2MediaStore(cfg *config.MediaConfig) *R2MediaStore {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})

	return &R2MediaStore{
		Client: client,
		Config: cfg,
	}
}

func (s *R2MediaStore) Save(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	return err
}

func (s *R2MediaStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}
