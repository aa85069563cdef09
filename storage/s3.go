package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/student-portfolio-backend/config"
	"github.com/rs/zerolog/log"
)

// ErrIncompleteS3Config is returned when the S3 configuration is incomplete
var ErrIncompleteS3Config = errors.New("incomplete S3 configuration")

// S3Store keeps images in a bucket. References are publicURL + key.
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
	timeout   time.Duration
}

// NewS3Store builds a client from S3_* settings. With S3_ENDPOINT and static
// keys it targets any S3-compatible service; otherwise the default AWS chain is used.
func NewS3Store(c map[string]string) (*S3Store, error) {
	bucket := strings.TrimSpace(config.GetString(c, "S3_BUCKET", ""))
	region := strings.TrimSpace(config.GetString(c, "S3_REGION", ""))
	if bucket == "" || region == "" {
		return nil, fmt.Errorf("%w: S3_BUCKET and S3_REGION are required", ErrIncompleteS3Config)
	}

	var client *s3.Client
	endpoint := config.GetString(c, "S3_ENDPOINT", "")
	keyID := config.GetString(c, "S3_KEY_ID", "")
	accessKey := config.GetString(c, "S3_ACCESS_KEY", "")
	if endpoint != "" {
		if keyID == "" || accessKey == "" {
			return nil, fmt.Errorf("%w: S3_KEY_ID and S3_ACCESS_KEY are required with S3_ENDPOINT", ErrIncompleteS3Config)
		}
		client = s3.New(s3.Options{
			UsePathStyle: true,
			BaseEndpoint: aws.String(endpoint),
			Region:       region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(keyID, accessKey, ""),
			),
		})
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
		if err != nil {
			return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		client = s3.NewFromConfig(awsCfg)
	}

	publicURL := config.GetString(c, "S3_PUBLIC_URL", fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", bucket, region))
	if !strings.HasSuffix(publicURL, "/") {
		publicURL += "/"
	}

	return &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		publicURL: publicURL,
		timeout:   config.GetDuration(c, "S3_TIMEOUT", 30*time.Second),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	result, err := s.uploader.Upload(ctx, input)
	if err != nil {
		var mu manager.MultiUploadFailure
		if errors.As(err, &mu) {
			log.Error().Str("uploadId", mu.UploadID()).Err(err).Msg("multi-upload failure")
			return "", fmt.Errorf("multi-upload failure (upload_id: %s): %w", mu.UploadID(), mu)
		}
		log.Error().Err(err).Msg("upload failure")
		return "", fmt.Errorf("upload failure: %w", err)
	}
	log.Debug().Str("location", result.Location).Msg("uploaded image to s3 bucket")

	return s.publicURL + key, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, s.publicURL)
	if !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, ref)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}
	return nil
}
