package aggregate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/blob"
)

const snapshotPageSize = 500

// Service aggregates everything currently in a document store.
type Service struct {
	docs  storage.DocumentStore
	blobs storage.BlobStore
}

func NewService(docs storage.DocumentStore, blobs storage.BlobStore) *Service {
	return &Service{docs: docs, blobs: blobs}
}

func (s *Service) Visualization(ctx context.Context) (*Visualization, error) {
	inputs, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(inputs), nil
}

// Snapshot reads all documents newest first, paging through the store.
func (s *Service) Snapshot(ctx context.Context) ([]Input, error) {
	var inputs []Input
	for offset := 0; ; offset += snapshotPageSize {
		total, docs, err := s.docs.List(ctx, offset, snapshotPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load documents: %w", err)
		}
		if inputs == nil {
			inputs = make([]Input, 0, total)
		}
		for i := range docs {
			inputs = append(inputs, s.input(ctx, &docs[i]))
		}
		if len(docs) < snapshotPageSize || int64(offset+len(docs)) >= total {
			break
		}
	}
	return inputs, nil
}

func (s *Service) input(ctx context.Context, doc *domain.Document) Input {
	text := doc.RawText
	if doc.IsBlobBacked() {
		snippet, err := blob.ReadPrefix(ctx, s.blobs, doc.ContentPath, BlobSnippetChars)
		if err != nil {
			slog.Warn("Blob unreadable, aggregating without its text", "id", doc.ID, "path", doc.ContentPath, "error", err)
		}
		text = snippet
	}

	return Input{
		Source:      doc.Source,
		URL:         doc.URL,
		Tags:        doc.Tags,
		Severity:    doc.Severity,
		Probability: doc.Probability,
		Text:        text,
	}
}
