package ingest

import (
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/reg-hunter/pkg/apis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLManifestLoader_Load(t *testing.T) {
	input := `
kind: IngestManifest
version: v1
metadata:
  name: acts
documents:
  - url: https://example.org/copyright-act
    title: Copyright Act
  - text: |
      The broadcaster is liable for royalty payments.
`
	m, err := NewYAMLManifestLoader(strings.NewReader(input)).Load(true)
	require.NoError(t, err)

	assert.Equal(t, "acts", m.Metadata.Name)
	require.Len(t, m.Documents, 2)
	assert.Equal(t, apis.ManifestDocument{URL: "https://example.org/copyright-act", Title: "Copyright Act"}, m.Documents[0])
	assert.Equal(t, "The broadcaster is liable for royalty payments.\n", m.Documents[1].Text)
}

func TestYAMLManifestLoader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown field", "documents:\n  - link: https://example.org\n"},
		{"empty entry", "documents:\n  - title: nothing\n"},
		{"malformed", "documents: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLManifestLoader(strings.NewReader(tt.input)).Load(true)
			assert.Error(t, err)
		})
	}
}

func TestYAMLManifestLoader_SkipValidation(t *testing.T) {
	m, err := NewYAMLManifestLoader(strings.NewReader("documents: []\n")).Load(false)
	require.NoError(t, err)
	assert.Empty(t, m.Documents)
}
