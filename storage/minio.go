package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"AuraFM/config"
	"AuraFM/logger"
)

var minioClient *minio.Client

// coverBucket is set from config on InitMinio.
var coverBucket string

// InitMinio connects to the MinIO server and ensures the cover bucket
// exists.
func InitMinio(cfg *config.Config) error {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("Created object storage bucket", logger.String("bucket", cfg.MinioBucket))
	}

	minioClient = client
	coverBucket = cfg.MinioBucket
	logger.Info("MinIO client initialized",
		logger.String("endpoint", cfg.MinioEndpoint),
		logger.String("bucket", cfg.MinioBucket),
	)
	return nil
}

// GetMinioClient returns the shared MinIO client, or nil when object
// storage is not configured.
func GetMinioClient() *minio.Client {
	return minioClient
}

// UploadCover stores a playlist cover image and returns its object path.
func UploadCover(ctx context.Context, playlistID string, reader io.Reader, size int64, contentType string) (string, error) {
	if minioClient == nil {
		return "", fmt.Errorf("object storage not configured")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectPath := fmt.Sprintf("covers/%s", playlistID)
	_, err := minioClient.PutObject(ctx, coverBucket, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload cover for playlist %s: %w", playlistID, err)
	}
	return objectPath, nil
}

// FetchCover opens a stored cover image for streaming back to the client.
// The returned reader must be closed by the caller.
func FetchCover(ctx context.Context, objectPath string) (io.ReadCloser, string, error) {
	if minioClient == nil {
		return nil, "", fmt.Errorf("object storage not configured")
	}

	object, err := minioClient.GetObject(ctx, coverBucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch cover %s: %w", objectPath, err)
	}

	stat, err := object.Stat()
	if err != nil {
		object.Close()
		return nil, "", fmt.Errorf("failed to stat cover %s: %w", objectPath, err)
	}
	return object, stat.ContentType, nil
}
