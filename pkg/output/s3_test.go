package output

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"

	"github.com/TwistedFury/RayTracer/pkg/log"
)

// mockS3 captures PutObject calls; every other method panics via the nil embedded interface
type mockS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Write(t *testing.T) {
	client := &mockS3{}
	sink := NewS3SinkWithClient(client, "renders-bucket", "nightly", log.New("output-test"))

	if err := sink.Write(context.Background(), "frame.png", testImage(6, 3)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if client.input == nil {
		t.Fatal("Expected PutObject to be called")
	}
	if got := aws.StringValue(client.input.Bucket); got != "renders-bucket" {
		t.Errorf("Expected bucket renders-bucket, got %s", got)
	}
	if got := aws.StringValue(client.input.Key); got != "nightly/frame.png" {
		t.Errorf("Expected key nightly/frame.png, got %s", got)
	}
	if got := aws.StringValue(client.input.ContentType); got != "image/png" {
		t.Errorf("Expected content type image/png, got %s", got)
	}
	if got := aws.Int64Value(client.input.ContentLength); got != int64(len(client.body)) {
		t.Errorf("Content length %d does not match body size %d", got, len(client.body))
	}

	img, err := imaging.Decode(bytes.NewReader(client.body))
	if err != nil {
		t.Fatalf("Uploaded body is not a decodable image: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 3 {
		t.Errorf("Expected 6x3 image, got %v", img.Bounds())
	}
}

func TestS3Sink_Errors(t *testing.T) {
	uploadErr := errors.New("access denied")
	sink := NewS3SinkWithClient(&mockS3{err: uploadErr}, "bucket", "", log.New("output-test"))

	if err := sink.Write(context.Background(), "frame.png", testImage(2, 2)); !errors.Is(err, uploadErr) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}

	if err := sink.Write(context.Background(), "frame.hdr", testImage(2, 2)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNewS3Sink(t *testing.T) {
	sink, err := NewS3Sink(S3Config{
		Bucket:    "bucket",
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		AccessKey: "key",
		SecretKey: "secret",
	}, log.New("output-test"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sink.bucket != "bucket" || sink.client == nil {
		t.Errorf("Sink not configured: %+v", sink)
	}
}
