package storage

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps condition documents in an S3 bucket. Used when
// STORAGE_DRIVER=s3; a custom endpoint supports S3-compatible stores.
type S3Store struct {
	client *s3.Client
	bucket string
}

func NewS3Store(region, endpoint, accessKey, secretKey, bucket string) *S3Store {
	cfg := aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: bucket}
}

func (s *S3Store) Save(ctx context.Context, name string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        r,
		ContentType: aws.String(ContentTypePDF),
	})
	return err
}

func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	return out.Body, aws.ToInt64(out.ContentLength), nil
}

var _ ConditionStore = (*S3Store)(nil)
