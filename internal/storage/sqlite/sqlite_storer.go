package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so that lexical order matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id           TEXT PRIMARY KEY,
    url          TEXT    NOT NULL DEFAULT '',
    source       TEXT    NOT NULL DEFAULT '',
    identity_key TEXT    NOT NULL UNIQUE,
    raw_text     TEXT    NOT NULL DEFAULT '',
    content_path TEXT    NOT NULL DEFAULT '',
    content_size INTEGER NOT NULL DEFAULT 0,
    entities     TEXT    NOT NULL DEFAULT '[]',
    tags         TEXT    NOT NULL DEFAULT '[]',
    severity     REAL    NOT NULL DEFAULT 0,
    probability  REAL    NOT NULL DEFAULT 0,
    language     TEXT    NOT NULL DEFAULT '',
    version      INTEGER NOT NULL DEFAULT 1,
    created_at   TEXT    NOT NULL,
    updated_at   TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_created_at_idx ON documents (created_at DESC, id DESC);
`

const documentColumns = `id, url, source, identity_key, raw_text, content_path, content_size,
	entities, tags, severity, probability, language, version, created_at, updated_at`

type Config struct {
	Path string
}

type Storer struct {
	db *sql.DB
}

func NewStorer(ctx context.Context, cfg Config) (*Storer, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection serialises writers and keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("SQLite document store ready", "path", cfg.Path)
	return &Storer{db: db}, nil
}

func (s *Storer) Close() error {
	return s.db.Close()
}

func (s *Storer) Healthy(ctx context.Context) bool {
	return s.db.PingContext(ctx) == nil
}

func (s *Storer) GetOrCreate(ctx context.Context, key string, defaults domain.Document) (*domain.Document, bool, error) {
	doc := domain.NewDocument(key, defaults)
	doc.Version = 1

	entitiesJSON, tagsJSON, err := marshalMetadata(doc)
	if err != nil {
		return nil, false, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (identity_key) DO NOTHING`,
		doc.ID.String(), doc.URL, doc.Source, doc.IdentityKey, doc.RawText, doc.ContentPath, doc.ContentSize,
		entitiesJSON, tagsJSON, doc.Severity, doc.Probability, doc.Language, doc.Version,
		doc.CreatedAt.Format(timeLayout), doc.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 1 {
		slog.Debug("Created document", "id", doc.ID, "key", key)
		return doc, true, nil
	}

	existing, err := scanDocument(s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE identity_key = ?`, key))
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

	res, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET url = ?, source = ?, raw_text = ?, content_path = ?, content_size = ?,
		    entities = ?, tags = ?, severity = ?, probability = ?, language = ?,
		    version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		doc.URL, doc.Source, doc.RawText, doc.ContentPath, doc.ContentSize,
		entitiesJSON, tagsJSON, doc.Severity, doc.Probability, doc.Language,
		now.Format(timeLayout), doc.ID.String(), doc.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE id = ?)`, doc.ID.String()).Scan(&exists); err != nil {
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
	doc, err := scanDocument(s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (s *Storer) List(ctx context.Context, offset, limit int) (int64, []domain.Document, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("failed to count documents: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?`, limit, offset)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.Document, error) {
	var (
		doc                    domain.Document
		id                     string
		entitiesJSON, tagsJSON string
		createdAt, updatedAt   string
	)
	if err := row.Scan(
		&id,
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
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if doc.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid document id %q: %w", id, err)
	}
	if doc.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	if doc.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("invalid updated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(entitiesJSON), &doc.Entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &doc.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	return &doc, nil
}

func marshalMetadata(doc *domain.Document) (string, string, error) {
	entities := doc.Entities
	if entities == nil {
		entities = []domain.Entity{}
	}
	entitiesJSON, err := json.Marshal(entities)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal entities: %w", err)
	}

	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(entitiesJSON), string(tagsJSON), nil
}
