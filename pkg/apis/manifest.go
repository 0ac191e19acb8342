package apis

import "fmt"

const (
	ManifestKind    = "IngestManifest"
	ManifestVersion = "v1"
)

// IngestManifest lists documents for batch submission.
type IngestManifest struct {
	Kind      string             `json:"kind" example:"IngestManifest" yaml:"kind" schema:"enum=IngestManifest"`
	Version   string             `json:"version" example:"v1" yaml:"version" schema:"enum=v1"`
	Metadata  Metadata           `json:"metadata" yaml:"metadata"`
	Documents []ManifestDocument `json:"documents" yaml:"documents" schema:"required,minItems=1"`
}

type Metadata struct {
	Name        string `json:"name" example:"Canadian copyright acts" yaml:"name"`
	Description string `json:"description" example:"Federal statutes on copyright and broadcasting" yaml:"description"`
}

// ManifestDocument is one submission. Text wins over URL when both are set.
type ManifestDocument struct {
	URL   string `json:"url,omitempty" example:"https://laws-lois.justice.gc.ca/eng/acts/C-42/" yaml:"url"`
	Text  string `json:"text,omitempty" yaml:"text" description:"Raw text. Wins over url when both are set."`
	Title string `json:"title,omitempty" example:"Copyright Act" yaml:"title"`
}

// Validate checks the header and that every document has a url or text.
// Kind and version may be omitted.
func (m *IngestManifest) Validate() error {
	if m.Kind != "" && m.Kind != ManifestKind {
		return &ManifestError{Message: fmt.Sprintf("unsupported kind %q", m.Kind)}
	}
	if m.Version != "" && m.Version != ManifestVersion {
		return &ManifestError{Message: fmt.Sprintf("unsupported version %q", m.Version)}
	}
	if len(m.Documents) == 0 {
		return &ManifestError{Message: "at least one document is required"}
	}
	for i, d := range m.Documents {
		if d.URL == "" && d.Text == "" {
			return &ManifestError{Message: fmt.Sprintf("documents[%d] must have url or text defined", i)}
		}
	}
	return nil
}

type ManifestError struct {
	Message string `json:"message" example:"documents[0] must have url or text defined"`
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest error: %s", e.Message)
}
