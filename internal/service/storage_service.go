package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
	"github.com/spec-kit/commerce-service/internal/storage"
)

// StorageService uploads blobs to the storage collaborator and tracks
// their metadata.
type StorageService struct {
	store storage.ObjectStore
	files repository.FileRepository
}

// NewStorageService builds the service.
func NewStorageService(store storage.ObjectStore, files repository.FileRepository) *StorageService {
	return &StorageService{store: store, files: files}
}

// Upload writes the blob and records metadata owned by the caller.
func (s *StorageService) Upload(ctx context.Context, ownerID, fileName, mimeType string, contents io.Reader) (*domain.StoredFile, error) {
	key := fmt.Sprintf("%s/%s%s", ownerID, uuid.NewString(), filepath.Ext(fileName))

	size, err := s.store.Put(ctx, key, contents)
	if err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}

	file := &domain.StoredFile{
		OwnerID:    ownerID,
		StorageKey: key,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
	}
	if err := s.files.Create(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// ListFiles returns metadata for the caller's uploads.
func (s *StorageService) ListFiles(ctx context.Context, ownerID string) ([]domain.StoredFile, error) {
	return s.files.ListByOwner(ctx, ownerID)
}
