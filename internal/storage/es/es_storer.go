package es

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/optype"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/google/uuid"
)

// Storer keeps documents in an Elasticsearch index. The document _version is
// managed externally and mirrors domain.Document.Version.
type Storer struct {
	client       *elasticsearch.TypedClient
	indexName    string
	indexBuilder *IndexBuilder
}

func NewStorer(ctx context.Context, config ClientConfig) (*Storer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	s := &Storer{
		client:       client,
		indexName:    config.IndexName,
		indexBuilder: NewIndexBuilder(),
	}

	if err := s.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return s, nil
}

func (s *Storer) GetOrCreate(ctx context.Context, key string, defaults domain.Document) (*domain.Document, bool, error) {
	id := documentID(key)

	existing, err := s.Get(ctx, id)
	if err == nil {
		return existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	doc := domain.NewDocument(key, defaults)
	doc.ID = id
	doc.Version = 1

	_, err = s.client.Index(s.indexName).
		Id(id.String()).
		Document(s.indexBuilder.mapToESDocument(doc)).
		OpType(optype.Create).
		Version(strconv.FormatInt(doc.Version, 10)).
		VersionType(versiontype.External).
		Refresh(refresh.Waitfor).
		Do(ctx)
	if isStatus(err, http.StatusConflict) {
		// lost the creation race, the winner's document is authoritative
		existing, err := s.Get(ctx, id)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create document: %w", err)
	}

	slog.Debug("Document created", "id", id, "index", s.indexName)
	return doc, true, nil
}

// DocumentID is the _id a document with the given identity key is stored under.
func (s *Storer) DocumentID(key string) uuid.UUID {
	return documentID(key)
}

func (s *Storer) Save(ctx context.Context, doc *domain.Document) error {
	next := *doc
	next.Version = doc.Version + 1
	next.UpdatedAt = time.Now().UTC()

	_, err := s.client.Index(s.indexName).
		Id(doc.ID.String()).
		Document(s.indexBuilder.mapToESDocument(&next)).
		Version(strconv.FormatInt(next.Version, 10)).
		VersionType(versiontype.External).
		Refresh(refresh.Waitfor).
		Do(ctx)
	if isStatus(err, http.StatusConflict) {
		return storage.Conflict(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}

	doc.Version = next.Version
	doc.UpdatedAt = next.UpdatedAt
	return nil
}

func (s *Storer) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	res, err := s.client.Get(s.indexName, id.String()).Do(ctx)
	if isStatus(err, http.StatusNotFound) {
		return nil, storage.NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if !res.Found {
		return nil, storage.NotFound(id)
	}

	var doc domain.Document
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}

func (s *Storer) List(ctx context.Context, offset, limit int) (int64, []domain.Document, error) {
	countRes, err := s.client.Count().Index(s.indexName).Do(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count documents: %w", err)
	}

	sortOrderDesc := sortorder.Desc
	res, err := s.client.Search().
		Index(s.indexName).
		Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
		From(offset).
		Size(limit).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"created_at": {Order: &sortOrderDesc},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"id": {Order: &sortOrderDesc},
				},
			},
		).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch list query failed", "error", err, "offset", offset, "limit", limit)
		return 0, nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc domain.Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return 0, nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		docs = append(docs, doc)
	}

	return countRes.Count, docs, nil
}

func (s *Storer) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", s.indexName)
		return nil
	}

	mappings := s.indexBuilder.buildMapping()

	createRes, err := s.client.Indices.Create(s.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", s.indexName)
	return nil
}

func isStatus(err error, status int) bool {
	var esErr *types.ElasticsearchError
	return errors.As(err, &esErr) && esErr.Status == status
}

func isNotFound(err error) bool {
	var nf *apperr.NotFoundError
	return errors.As(err, &nf)
}

func (s *Storer) Healthy(ctx context.Context) bool {
	ok, err := s.client.Ping().Do(ctx)
	return err == nil && ok
}
