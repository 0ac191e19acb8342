package in_mem

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/google/uuid"
)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Document
	byKey       map[string]uuid.UUID
	// order holds ids in creation order
	order []uuid.UUID
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[uuid.UUID]domain.Document),
		byKey:   make(map[string]uuid.UUID),
	}
}

func (s *InMemStorer) GetOrCreate(ctx context.Context, key string, defaults domain.Document) (*domain.Document, bool, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if id, ok := s.byKey[key]; ok {
		doc := clone(s.storage[id])
		return &doc, false, nil
	}

	doc := domain.NewDocument(key, defaults)
	doc.Version = 1
	s.storage[doc.ID] = clone(*doc)
	s.byKey[key] = doc.ID
	s.order = append(s.order, doc.ID)

	slog.Debug("Created document in memory", "id", doc.ID, "key", key)
	return doc, true, nil
}

func (s *InMemStorer) Save(ctx context.Context, doc *domain.Document) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	current, ok := s.storage[doc.ID]
	if !ok {
		return storage.NotFound(doc.ID)
	}
	if current.Version != doc.Version {
		return storage.Conflict(doc)
	}

	doc.Version++
	doc.UpdatedAt = time.Now().UTC()
	doc.CreatedAt = current.CreatedAt
	doc.IdentityKey = current.IdentityKey
	s.storage[doc.ID] = clone(*doc)
	return nil
}

func (s *InMemStorer) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	doc, ok := s.storage[id]
	if !ok {
		return nil, storage.NotFound(id)
	}
	doc = clone(doc)
	return &doc, nil
}

func (s *InMemStorer) List(ctx context.Context, offset, limit int) (int64, []domain.Document, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	total := len(s.order)
	docs := make([]domain.Document, 0, max(0, min(limit, total-offset)))
	for i := total - 1 - offset; i >= 0 && len(docs) < limit; i-- {
		docs = append(docs, clone(s.storage[s.order[i]]))
	}
	return int64(total), docs, nil
}

func clone(d domain.Document) domain.Document {
	d.Tags = slices.Clone(d.Tags)
	d.Entities = slices.Clone(d.Entities)
	return d
}
