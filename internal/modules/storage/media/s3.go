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
	appcfg "github.com/postform/core/internal/config"
)

// S3Store writes uploads to an S3-compatible bucket.
type S3Store struct {
	client       *s3.Client
	bucket       string
	region       string
	endpoint     string
	customDomain string
	pathStyle    bool
}

func NewS3Store(cfg appcfg.S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyleAccess
	})

	return &S3Store{
		client:       client,
		bucket:       cfg.Bucket,
		region:       cfg.Region,
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		customDomain: strings.TrimRight(cfg.CustomDomain, "/"),
		pathStyle:    cfg.PathStyleAccess,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	objectKey := "uploads/" + key
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return s.publicURL(objectKey), nil
}

func (s *S3Store) publicURL(objectKey string) string {
	if s.customDomain != "" {
		return s.customDomain + "/" + objectKey
	}
	if s.endpoint != "" {
		if s.pathStyle {
			return s.endpoint + "/" + s.bucket + "/" + objectKey
		}
		return strings.Replace(s.endpoint, "://", "://"+s.bucket+".", 1) + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
}
