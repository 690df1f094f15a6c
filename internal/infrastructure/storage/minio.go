package storage

import (
	"context"
	"fmt"
	"time"

	"clinic-booking-service/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// NewMinioClient connects to object storage and makes sure the picture
// bucket exists. It returns nil when no endpoint is configured.
func NewMinioClient(cfg config.MinioConfig, log *logrus.Logger) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		log.Warn("MINIO_ENDPOINT not set, picture uploads are disabled")
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		log.Infof("Created bucket %s", cfg.Bucket)
	}

	log.Info("Successfully connected to MinIO")
	return client, nil
}
