package domain

import "time"

// StoredFile is metadata for an object placed in the storage collaborator.
type StoredFile struct {
	ID         string
	OwnerID    string
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}
