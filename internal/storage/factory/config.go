package factory

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/pg"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/sqlite"
	"github.com/DjordjeVuckovic/reg-hunter/pkg/stringsutil"
)

const (
	defaultSQLitePath = "reg-hunter.db"
	defaultBlobRoot   = "media"
)

type StorageConfig struct {
	storage.Type
	Pg       *pg.PoolConfig
	Es       *es.ClientConfig
	SQLite   *sqlite.Config
	BlobRoot string
}

func LoadEnv() (*StorageConfig, error) {
	storageType := (storage.Type)(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Error("STORAGE_TYPE environment variable is not set")
		return nil, fmt.Errorf("STORAGE_TYPE environment variable is not set")
	}
	if !slices.Contains(storage.SupportedTypes, storageType) {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			storage.SupportedTypes)
	}

	var esCfg *es.ClientConfig
	if storageType == storage.ES {
		esCfg = &es.ClientConfig{
			Addresses: stringsutil.RemoveEmptyStrings(strings.Split(os.Getenv("ES_ADDRESSES"), ",")),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
			APIKey:    os.Getenv("ES_API_KEY"),
		}
		if v := os.Getenv("ES_MAX_RETRIES"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid ES_MAX_RETRIES value: %q", v)
			}
			esCfg.MaxRetries = n
		}
		if len(esCfg.Addresses) == 0 || esCfg.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses, "indexName", esCfg.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		if v := os.Getenv("PG_MAX_CONNS"); v != "" {
			n, err := strconv.ParseInt(v, 10, 32)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid PG_MAX_CONNS value: %q", v)
			}
			pgCfg.MaxConns = int32(n)
		}
	}

	var sqliteCfg *sqlite.Config
	if storageType == storage.SQLite {
		sqliteCfg = &sqlite.Config{Path: os.Getenv("SQLITE_PATH")}
		if sqliteCfg.Path == "" {
			sqliteCfg.Path = defaultSQLitePath
		}
	}

	blobRoot := os.Getenv("BLOB_ROOT")
	if blobRoot == "" {
		blobRoot = defaultBlobRoot
	}

	return &StorageConfig{
		Type:     storageType,
		Pg:       pgCfg,
		Es:       esCfg,
		SQLite:   sqliteCfg,
		BlobRoot: blobRoot,
	}, nil
}
