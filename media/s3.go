package media

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// S3Config carries the settings for the S3 driver.
type S3Config struct {
	Bucket    string
	Region    string
	KeyPrefix string
	AccessID  string
	AccessKey string
}

// S3Store uploads note images to an S3 bucket. Returned URIs are the
// uploader's object locations, which requires the bucket (or a CDN in front
// of it) to allow public reads.
type S3Store struct {
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket must not be empty")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessID != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessID, cfg.AccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		uploader:  manager.NewUploader(client),
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrUploadFailed, file.Filename, err)
	}
	defer src.Close()

	key := s.keyPrefix + objectName(file.Filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   src,
	}
	if ct := file.Header.Get("Content-Type"); ct != "" {
		input.ContentType = aws.String(ct)
	}

	result, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: putting %s: %v", ErrUploadFailed, key, err)
	}

	logrus.WithFields(logrus.Fields{"file": file.Filename, "key": key}).Debug("stored upload on S3")
	return result.Location, nil
}
