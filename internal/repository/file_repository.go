package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// FileRepository persists stored-file metadata.
type FileRepository interface {
	Create(ctx context.Context, file *domain.StoredFile) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.StoredFile, error)
}

type fileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository constructs repository.
func NewFileRepository(pool *pgxpool.Pool) FileRepository {
	return &fileRepository{pool: pool}
}

func (r *fileRepository) Create(ctx context.Context, file *domain.StoredFile) error {
	const query = `
        INSERT INTO stored_files (owner_id, storage_key, file_name, mime_type, size_bytes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		file.OwnerID,
		file.StorageKey,
		file.FileName,
		file.MimeType,
		file.SizeBytes,
	).Scan(&file.ID, &file.CreatedAt)
}

func (r *fileRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.StoredFile, error) {
	const query = `
        SELECT id, owner_id, storage_key, file_name, mime_type, size_bytes, created_at
        FROM stored_files WHERE owner_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StoredFile
	for rows.Next() {
		var file domain.StoredFile
		if err := rows.Scan(
			&file.ID,
			&file.OwnerID,
			&file.StorageKey,
			&file.FileName,
			&file.MimeType,
			&file.SizeBytes,
			&file.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, file)
	}
	return result, rows.Err()
}
