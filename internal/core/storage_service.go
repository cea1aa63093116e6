package core

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// storageService implements StorageService on top of the Firebase default
// bucket. Uploaded objects are made publicly readable so the portal can
// embed them without signed URLs.
type storageService struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewStorageService creates a new StorageService instance.
func NewStorageService(bucket *storage.BucketHandle, bucketName string) StorageService {
	return &storageService{bucket: bucket, bucketName: bucketName}
}

func (s *storageService) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error) {
	if s.bucket == nil {
		return "", fmt.Errorf("storage bucket is not configured")
	}

	object := path.Join(folder, fmt.Sprintf("%s_%s", uuid.New().String(), filename))
	w := s.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", object, err)
	}

	if err := s.bucket.Object(object).ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to publish object %s: %w", object, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, object), nil
}
