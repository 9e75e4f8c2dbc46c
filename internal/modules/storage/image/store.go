package image

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appcfg "github.com/inkwell-blog/core/internal/config"
)

// objectStore is the subset of bucket operations the image module needs.
// The S3 implementation is swapped for an in-memory one in tests.
type objectStore interface {
	Put(ctx context.Context, key string, payload []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type s3Store struct {
	client       *s3.Client
	bucket       string
	endpoint     string
	customDomain string
	pathStyle    bool
}

// NewS3Store builds an object store on the configured bucket.
func NewS3Store(opts appcfg.S3Config) (*s3Store, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	pathStyle := opts.PathStyleAccess
	if endpoint != "" && !pathStyle {
		// Custom endpoints are S3-compatible stores, which rarely do
		// virtual-hosted buckets.
		pathStyle = true
	}

	clientOpts := s3.Options{
		Region:       region,
		Credentials:  aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		UsePathStyle: pathStyle,
	}
	if endpoint != "" {
		clientOpts.BaseEndpoint = aws.String(endpoint)
	}

	resolvedEndpoint := endpoint
	if resolvedEndpoint == "" {
		resolvedEndpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}

	return &s3Store{
		client:       s3.New(clientOpts),
		bucket:       bucket,
		endpoint:     resolvedEndpoint,
		customDomain: strings.TrimRight(strings.TrimSpace(opts.CustomDomain), "/"),
		pathStyle:    pathStyle,
	}, nil
}

func (s *s3Store) Put(ctx context.Context, key string, payload []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	return err
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *s3Store) PublicURL(key string) string {
	if s.customDomain != "" {
		return s.customDomain + "/" + key
	}
	if s.pathStyle {
		return s.endpoint + "/" + s.bucket + "/" + key
	}
	scheme, host, ok := strings.Cut(s.endpoint, "://")
	if !ok {
		return s.endpoint + "/" + s.bucket + "/" + key
	}
	return scheme + "://" + s.bucket + "." + host + "/" + key
}
