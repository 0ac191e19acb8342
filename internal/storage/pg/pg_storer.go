package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `id, url, source, identity_key, raw_text, content_path, content_size,
	entities, tags, severity, probability, language, version, created_at, updated_at`

type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	return &Storer{db: pool.conn}, nil
}

func (s *Storer) GetOrCreate(ctx context.Context, key string, defaults domain.Document) (*domain.Document, bool, error) {
	doc := domain.NewDocument(key, defaults)
	doc.Version = 1

	entitiesJSON, tagsJSON, err := marshalMetadata(doc)
	if err != nil {
		return nil, false, err
	}

	cmd := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (identity_key) DO NOTHING
		RETURNING ` + documentColumns

	row := s.db.QueryRow(ctx, cmd,
		doc.ID, doc.URL, doc.Source, doc.IdentityKey, doc.RawText, doc.ContentPath, doc.ContentSize,
		entitiesJSON, tagsJSON, doc.Severity, doc.Probability, doc.Language, doc.Version, doc.CreatedAt, doc.UpdatedAt,
	)
	created, err := scanDocument(row)
	if err == nil {
		slog.Debug("Created document", "id", created.ID, "key", key)
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to insert document: %w", err)
	}

	existing, err := scanDocument(s.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE identity_key = $1`, key))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load document by identity key: %w", err)
	}
	return existing, false, nil
}

func (s *Storer) Save(ctx context.Context, doc *domain.Document) error {
	entitiesJSON, tagsJSON, err := marshalMetadata(doc)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	cmd := `
		UPDATE documents
		SET url = $3, source = $4, raw_text = $5, content_path = $6, content_size = $7,
		    entities = $8, tags = $9, severity = $10, probability = $11, language = $12,
		    version = version + 1, updated_at = $13
		WHERE id = $1 AND version = $2
	`
	tag, err := s.db.Exec(ctx, cmd,
		doc.ID, doc.Version, doc.URL, doc.Source, doc.RawText, doc.ContentPath, doc.ContentSize,
		entitiesJSON, tagsJSON, doc.Severity, doc.Probability, doc.Language, now,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1)`, doc.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check document existence: %w", err)
		}
		if !exists {
			return storage.NotFound(doc.ID)
		}
		return storage.Conflict(doc)
	}

	doc.Version++
	doc.UpdatedAt = now
	return nil
}

func (s *Storer) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, err := scanDocument(s.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (s *Storer) List(ctx context.Context, offset, limit int) (int64, []domain.Document, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM documents`).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("failed to count documents: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0, limit)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return total, docs, nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	var entitiesJSON, tagsJSON []byte

	if err := row.Scan(
		&doc.ID,
		&doc.URL,
		&doc.Source,
		&doc.IdentityKey,
		&doc.RawText,
		&doc.ContentPath,
		&doc.ContentSize,
		&entitiesJSON,
		&tagsJSON,
		&doc.Severity,
		&doc.Probability,
		&doc.Language,
		&doc.Version,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(entitiesJSON, &doc.Entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &doc.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	return &doc, nil
}

func marshalMetadata(doc *domain.Document) ([]byte, []byte, error) {
	entities := doc.Entities
	if entities == nil {
		entities = []domain.Entity{}
	}
	entitiesJSON, err := json.Marshal(entities)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal entities: %w", err)
	}

	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	return entitiesJSON, tagsJSON, nil
}
