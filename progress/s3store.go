package progress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"breathbot/config"
)

// ObjectAPI is the slice of the S3 client the store needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client creates an S3 client from the default AWS configuration chain,
// with optional region, profile and addressing overrides.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// S3Store keeps the progress document as a single JSON object.
type S3Store struct {
	api    ObjectAPI
	bucket string
	key    string
}

func NewS3Store(api ObjectAPI, bucket, key string) *S3Store {
	return &S3Store{api: api, bucket: bucket, key: key}
}

func (s *S3Store) Describe() string { return fmt.Sprintf("s3://%s/%s", s.bucket, s.key) }

// Load returns an empty document when the object does not exist yet.
func (s *S3Store) Load(ctx context.Context) (State, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StoreTimeout)
	defer cancel()

	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isNotFound(err) {
			return NewState(), nil
		}
		return nil, fmt.Errorf("get progress object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read progress object: %w", err)
	}
	return decode(data)
}

func (s *S3Store) Save(ctx context.Context, st State) error {
	data, err := encode(st)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, config.StoreTimeout)
	defer cancel()

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put progress object: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var noKey *s3types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}

	var respErr *http.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
