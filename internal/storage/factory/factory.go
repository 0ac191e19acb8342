package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/blob"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/pg"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/sqlite"
	pkgserver "github.com/DjordjeVuckovic/reg-hunter/pkg/server"
)

// Stores bundles the document and blob stores of one deployment.
type Stores struct {
	Documents storage.DocumentStore
	Blobs     storage.BlobStore
	Health    pkgserver.HealthChecker
	closeFn   func()
}

func (s *Stores) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// NewStores creates the document store selected by cfg.Type and a blob store
// rooted at cfg.BlobRoot.
func NewStores(ctx context.Context, cfg *StorageConfig) (*Stores, error) {
	blobs := blob.NewStore(cfg.BlobRoot)
	stores := &Stores{Blobs: blobs}
	var docHealth pkgserver.HealthChecker

	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		storer, err := pg.NewStorer(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		stores.Documents = storer
		docHealth = pg.NewHealthChecker(pool)
		stores.closeFn = pool.Close

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		storer, err := es.NewStorer(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}
		stores.Documents = storer
		docHealth = storer

	case storage.SQLite:
		if cfg.SQLite == nil {
			return nil, fmt.Errorf("missing SQLite configuration")
		}
		storer, err := sqlite.NewStorer(ctx, *cfg.SQLite)
		if err != nil {
			return nil, err
		}
		stores.Documents = storer
		docHealth = storer
		stores.closeFn = func() { _ = storer.Close() }

	case storage.InMem:
		stores.Documents = in_mem.NewInMemStorer()
		docHealth = pkgserver.NewOkHealthChecker()

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}

	stores.Health = pkgserver.AllHealthy{docHealth, blobs}
	return stores, nil
}
