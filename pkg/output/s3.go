package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/TwistedFury/RayTracer/pkg/log"
)

// S3Config describes an S3-compatible bucket
type S3Config struct {
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders"
	Endpoint  string // Empty for AWS itself
	Region    string
	AccessKey string
	SecretKey string
}

// S3Sink uploads images to object storage
type S3Sink struct {
	client s3iface.S3API
	bucket string
	prefix string
	logger log.Logger
}

// NewS3Sink creates a session for cfg and returns a sink using it
func NewS3Sink(cfg S3Config, logger log.Logger) (*S3Sink, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating S3 session: %w", err)
	}

	return NewS3SinkWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix, logger), nil
}

// NewS3SinkWithClient creates a sink around an existing client
func NewS3SinkWithClient(client s3iface.S3API, bucket, prefix string, logger log.Logger) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Write encodes img by the extension of name and uploads it as prefix/name
func (s *S3Sink) Write(ctx context.Context, name string, img image.Image) error {
	data, format, err := Encode(name, img)
	if err != nil {
		return err
	}

	key := path.Join(s.prefix, name)
	size := int64(len(data))
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType(format)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Infof("uploaded s3://%s/%s (%d bytes)", s.bucket, key, size)
	return nil
}
