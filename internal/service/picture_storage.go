package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"clinic-booking-service/internal/domain/apperror"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

// MaxPictureSize bounds uploaded profile pictures.
const MaxPictureSize = 5 << 20

var pictureExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// PictureStorage stores a profile picture and returns its public URL.
type PictureStorage interface {
	Upload(ctx context.Context, ownerID uuid.UUID, file io.Reader, size int64, contentType string) (string, error)
}

type minioPictureStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *logrus.Logger
}

// NewPictureStorage returns a MinIO backed storage. With a nil client every
// upload fails with an invalid state error.
func NewPictureStorage(client *minio.Client, bucket, publicURL string, log *logrus.Logger) PictureStorage {
	if client == nil {
		return disabledPictureStorage{}
	}
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}
	return &minioPictureStorage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log,
	}
}

func (s *minioPictureStorage) Upload(ctx context.Context, ownerID uuid.UUID, file io.Reader, size int64, contentType string) (string, error) {
	objectName, err := PictureObjectName(ownerID, contentType, size)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.Warnf("Failed to upload picture %s: %+v", objectName, err)
		return "", apperror.Persistence("could not store picture", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

// PictureObjectName validates an upload and names its object.
func PictureObjectName(ownerID uuid.UUID, contentType string, size int64) (string, error) {
	ext, ok := pictureExtensions[contentType]
	if !ok {
		return "", apperror.Validation("picture must be a jpeg, png or webp image")
	}
	if size <= 0 || size > MaxPictureSize {
		return "", apperror.Validation("picture must be between 1 byte and 5 MiB")
	}
	return fmt.Sprintf("profiles/%s/%s%s", ownerID, uuid.NewString(), ext), nil
}

type disabledPictureStorage struct{}

func (disabledPictureStorage) Upload(context.Context, uuid.UUID, io.Reader, int64, string) (string, error) {
	return "", apperror.InvalidState("picture uploads are not configured")
}
