package storage

import (
	"context"
	"io"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/google/uuid"
)

// DocumentStore persists processed documents.
//
// Save is a compare-and-swap on Document.Version: it succeeds only when the
// stored version still equals the caller's copy, bumps the version and
// returns *apperr.ConflictError otherwise.
type DocumentStore interface {
	// GetOrCreate returns the document with the given identity key, creating
	// it from defaults when absent. created reports which happened.
	GetOrCreate(ctx context.Context, key string, defaults domain.Document) (doc *domain.Document, created bool, err error)
	Save(ctx context.Context, doc *domain.Document) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	// List returns documents newest first along with the total count.
	List(ctx context.Context, offset, limit int) (total int64, docs []domain.Document, err error)
}

// KeyedIDs is implemented by stores whose document ids are derived from the
// identity key rather than taken from the create defaults.
type KeyedIDs interface {
	DocumentID(key string) uuid.UUID
}

// BlobStore holds full texts that are too large to keep inline.
type BlobStore interface {
	Write(ctx context.Context, path string, data []byte) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

type Type string

const (
	ES     Type = "es"
	PG     Type = "pg"
	SQLite Type = "sqlite"
	InMem  Type = "in_mem"
)

var SupportedTypes = []Type{PG, ES, SQLite, InMem}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

// NotFound builds the error stores return for a missing document id.
func NotFound(id uuid.UUID) error {
	return apperr.NewNotFound("document", id.String())
}

// Conflict builds the error stores return when a save lost a version race.
func Conflict(doc *domain.Document) error {
	return apperr.NewConflict(doc.ID.String(), doc.Version)
}
