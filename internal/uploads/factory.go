package uploads

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/escrowline/backend/internal/config"
	"github.com/escrowline/backend/internal/uploads/drivers"
)

// NewStorageFromConfig creates the document storage driver selected by STORAGE_TYPE.
// A local public URL given as a path is served by this service, so it is
// prefixed with serviceURL.
func NewStorageFromConfig(ctx context.Context, cfg config.StorageConfig, serviceURL string) (StorageDriver, error) {
	switch cfg.Type {
	case "local":
		publicURL := localPublicURL(cfg.LocalPublicURL, serviceURL)
		slog.Info("initializing local document storage", "dir", cfg.LocalBaseDir, "publicURL", publicURL)
		return drivers.NewLocalFSDriver(cfg.LocalBaseDir, publicURL)
	case "s3":
		slog.Info("initializing S3 document storage", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)

		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.S3Region),
		}

		if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
			creds := credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
			opts = append(opts, awsconfig.WithCredentialsProvider(creds))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(endpointURL(cfg.S3Endpoint, cfg.S3UseSSL))
				// MinIO and other self-hosted endpoints need path-style addressing
				o.UsePathStyle = true
			}
		})

		return drivers.NewS3Driver(client, cfg.S3Bucket, cfg.S3PublicURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

func localPublicURL(publicURL, serviceURL string) string {
	if !strings.HasPrefix(publicURL, "/") || serviceURL == "" {
		return publicURL
	}
	return strings.TrimRight(serviceURL, "/") + publicURL
}

func endpointURL(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
