package storage

import (
	"context"
	"errors"
	"fmt"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"socialnetwork/internal/config"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("object not found")

type Picture struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

type Storage interface {
	UploadPicture(ctx context.Context, userID int64, fileName, contentType string, file io.Reader, size int64) (string, error)
	GetPicture(ctx context.Context, objectName string) (*Picture, error)
	DeletePicture(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinIO.BucketName, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinIO.BucketName, err)
		}
		log.Printf("created bucket %s", cfg.MinIO.BucketName)
	}

	return &MinIOClient{client: client, bucket: cfg.MinIO.BucketName}, nil
}

// ObjectName builds the key a user's picture is stored under.
func ObjectName(userID int64, fileName, contentType string, now time.Time) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			fileExt = exts[0]
		}
	}

	return fmt.Sprintf("profiles/%d/%d/%02d/%s%s",
		userID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)
}

func (m *MinIOClient) UploadPicture(ctx context.Context, userID int64, fileName, contentType string, file io.Reader, size int64) (string, error) {
	now := time.Now()
	objectName := ObjectName(userID, fileName, contentType, now)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"user-id":           fmt.Sprint(userID),
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload picture to MinIO: %w", err)
	}

	return objectName, nil
}

// GetPicture opens the object for streaming; the caller closes Body.
func (m *MinIOClient) GetPicture(ctx context.Context, objectName string) (*Picture, error) {
	object, err := m.client.GetObject(ctx, m.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get picture from MinIO: %w", err)
	}

	info, err := object.Stat()
	if err != nil {
		object.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("picture %s: %w", objectName, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to stat picture: %w", err)
	}

	return &Picture{
		Body:        object,
		Size:        info.Size,
		ContentType: info.ContentType,
	}, nil
}

func (m *MinIOClient) DeletePicture(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("failed to delete picture from MinIO: %w", err)
	}
	return nil
}
