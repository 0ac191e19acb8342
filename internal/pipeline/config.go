package pipeline

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultBlobThreshold is the text size in bytes above which the full text is
// moved out of the document record into the blob store.
const DefaultBlobThreshold int64 = 2_000_000

type Config struct {
	BlobThreshold int64
}

func DefaultConfig() Config {
	return Config{BlobThreshold: DefaultBlobThreshold}
}

func LoadConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("BLOB_THRESHOLD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid BLOB_THRESHOLD_BYTES value %q", v)
		}
		cfg.BlobThreshold = n
	}

	return &cfg, nil
}
