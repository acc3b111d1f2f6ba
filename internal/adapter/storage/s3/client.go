package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/gobid/auctionhouse/internal/config"
)

// Client stores listing images in an S3-compatible bucket (AWS S3 or MinIO).
type Client struct {
	s3Client      *s3.Client
	uploader      *manager.Uploader
	bucketName    string
	publicBaseURL string
	logger        *slog.Logger
}

// NewClient builds an image store client from configuration. The bucket must
// already exist.
func NewClient(cfg *appconfig.Config, logger *slog.Logger) (*Client, error) {
	store := cfg.ImageStore
	if store.AccessKeyID == "" || store.SecretAccessKey == "" || store.Bucket == "" || store.Region == "" {
		return nil, fmt.Errorf("image store credentials (IMAGE_STORE_ACCESS_KEY_ID, IMAGE_STORE_SECRET_ACCESS_KEY, IMAGE_STORE_BUCKET, IMAGE_STORE_REGION) must be set")
	}

	scheme := "http"
	if store.UseSSL {
		scheme = "https"
	}
	endpointURL := fmt.Sprintf("%s://%s", scheme, store.Endpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(store.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(store.AccessKeyID, store.SecretAccessKey, "")),
		awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:    endpointURL,
					Source: aws.EndpointSourceCustom,
				}, nil
			})),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for image store: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// MinIO serves buckets on paths, not subdomains.
		o.UsePathStyle = true
	})
	uploader := manager.NewUploader(s3Client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(store.Bucket)}); err != nil {
		return nil, fmt.Errorf("image store bucket %q is not reachable: %w", store.Bucket, err)
	}

	publicBase := store.PublicBaseURL
	if publicBase == "" {
		publicBase = endpointURL
	}

	logger.Info("image store initialized", "bucket", store.Bucket, "endpoint", store.Endpoint)

	return &Client{
		s3Client:      s3Client,
		uploader:      uploader,
		bucketName:    store.Bucket,
		publicBaseURL: publicBase,
		logger:        logger,
	}, nil
}

// UploadFile stores an object and returns its public URL.
func (c *Client) UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error) {
	start := time.Now()

	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        fileContent,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to bucket %s: %w", objectKey, c.bucketName, err)
	}

	c.logger.Info("image uploaded",
		"key", objectKey,
		"bucket", c.bucketName,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, c.bucketName, objectKey), nil
}

// DeleteFile removes an object from the bucket.
func (c *Client) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("deleting %s from bucket %s: %w", objectKey, c.bucketName, err)
	}
	return nil
}
