package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/clubworks/clubd/internal/idgen"
)

// S3Store stores image blobs in an S3-compatible bucket.
type S3Store struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
}

// Compile-time check that S3Store implements Store.
var _ Store = (*S3Store)(nil)

// NewS3Store creates an S3 blob store. If endpoint is non-empty, path-style
// addressing is enabled (for MinIO and similar) and issued URLs point at the
// endpoint instead of the AWS public hostname.
func NewS3Store(ctx context.Context, bucket, prefix, region, endpoint string) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(cfg, s3opts...)
	return &S3Store{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		baseURL: objectBaseURL(bucket, region, endpoint),
	}, nil
}

// Put uploads data under a freshly generated key and returns its URL.
func (s *S3Store) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	id, err := idgen.GenerateWithPrefix("")
	if err != nil {
		return "", err
	}
	key := s.prefix + "/" + id + extensionFor(contentType)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the blob the URL points at.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key, err := keyFromURL(s.baseURL, url)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object: %w", err)
	}
	return nil
}

// objectBaseURL returns the URL prefix under which objects are addressable.
func objectBaseURL(bucket, region, endpoint string) string {
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}

// keyFromURL extracts the object key from a URL this store issued.
func keyFromURL(baseURL, url string) (string, error) {
	key, ok := strings.CutPrefix(url, baseURL+"/")
	if !ok || key == "" {
		return "", fmt.Errorf("url %q is not managed by this blob store", url)
	}
	return key, nil
}

// extensionFor maps an image content type to a file extension.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
