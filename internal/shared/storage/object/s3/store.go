package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"biography-site/internal/shared/storage/object"
	"biography-site/internal/shared/util"
)

// api is the subset of *s3.Client the store uses.
type api interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store implements MediaStore using Amazon S3.
type Store struct {
	client api
	bucket string
	prefix string
}

// New creates a new S3-backed media store.
func New(ctx context.Context, region, bucket, prefix string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func newWithClient(client api, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: normalizePrefix(prefix)}
}

// Put uploads the reader contents to key.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) (object.Info, error) {
	if err := ctx.Err(); err != nil {
		return object.Info{}, err
	}
	clean, err := util.CleanMediaKey(key)
	if err != nil {
		return object.Info{}, err
	}
	objectKey := applyPrefix(s.prefix, clean)

	contentType, body, err := object.Sniff(r)
	if err != nil {
		return object.Info{}, fmt.Errorf("read sniff: %w", err)
	}
	counter := &countingReader{r: body}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(objectKey),
		Body:                 counter,
		ContentType:          aws.String(contentType),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return object.Info{}, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return object.Info{ContentType: contentType, Size: counter.n}, nil
}

// Open downloads a stored object for reading.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, object.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, object.Info{}, err
	}
	clean, err := util.CleanMediaKey(key)
	if err != nil {
		return nil, object.Info{}, err
	}
	objectKey := applyPrefix(s.prefix, clean)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var missing *s3types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, object.Info{}, object.ErrNotFound
		}
		return nil, object.Info{}, fmt.Errorf("s3 get object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}

	info := object.Info{ContentType: aws.ToString(out.ContentType), Size: aws.ToInt64(out.ContentLength)}
	if info.ContentType == "" {
		info.ContentType = "application/octet-stream"
	}
	return out.Body, info, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(prefix, "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}

var _ object.MediaStore = (*Store)(nil)
