package ingest

import (
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/reg-hunter/pkg/apis"
	"gopkg.in/yaml.v3"
)

type YAMLManifestLoader struct {
	reader io.Reader
}

func NewYAMLManifestLoader(reader io.Reader) *YAMLManifestLoader {
	return &YAMLManifestLoader{
		reader: reader,
	}
}

func (l *YAMLManifestLoader) Load(validate bool) (*apis.IngestManifest, error) {
	decoder := yaml.NewDecoder(l.reader)
	decoder.KnownFields(true)

	var manifest apis.IngestManifest
	if err := decoder.Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if validate {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
	}
	return &manifest, nil
}
