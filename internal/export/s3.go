package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config configures an S3-compatible target. Endpoint and PathStyle
// support MinIO and similar services; credentials come from the default
// AWS chain.
type S3Config struct {
	Bucket    string `yaml:"-"`
	Prefix    string `yaml:"-"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`

	// LoadOptions are appended to the default config loading.
	LoadOptions []func(*config.LoadOptions) error `yaml:"-"`
}

// S3Target uploads reports to a bucket.
type S3Target struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Target creates an S3Target. Region defaults to us-east-1.
func NewS3Target(ctx context.Context, cfg S3Config) (*S3Target, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := append([]func(*config.LoadOptions) error{config.WithRegion(region)}, cfg.LoadOptions...)
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Target{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (t *S3Target) Write(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := path.Join(t.prefix, name)
	input := &s3.PutObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := t.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("uploading s3://%s/%s: %w", t.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", t.bucket, key), nil
}
