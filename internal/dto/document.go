package dto

import (
	"time"

	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/google/uuid"
)

// SubmitRequest is the body of /fetch and /fetch-preview.
type SubmitRequest struct {
	Text  string `json:"text,omitempty" example:"The broadcaster is liable for copyright royalty payments."`
	URL   string `json:"url,omitempty" swaggertype:"string" format:"uri" example:"https://laws-lois.justice.gc.ca/eng/acts/C-42/"`
	Title string `json:"title,omitempty" example:"Copyright Act"`
}

type SubmitResponse struct {
	ID          uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Tags        []string  `json:"tags"`
	Severity    float64   `json:"severity"`
	Probability float64   `json:"probability"`
	Language    string    `json:"language,omitempty"`
	Created     bool      `json:"created"`
}

func NewSubmitResponse(doc *domain.Document, created bool) SubmitResponse {
	return SubmitResponse{
		ID:          doc.ID,
		URL:         doc.URL,
		Source:      doc.Source,
		Tags:        doc.Tags,
		Severity:    doc.Severity,
		Probability: doc.Probability,
		Language:    doc.Language,
		Created:     created,
	}
}

type ListItem struct {
	ID          uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Source      string    `json:"source"`
	Snippet     string    `json:"snippet"`
	Tags        []string  `json:"tags"`
	Severity    float64   `json:"severity"`
	Probability float64   `json:"probability"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewListItem(doc *domain.Document, snippet string) ListItem {
	return ListItem{
		ID:          doc.ID,
		Source:      doc.Source,
		Snippet:     snippet,
		Tags:        nonNilTags(doc.Tags),
		Severity:    doc.Severity,
		Probability: doc.Probability,
		CreatedAt:   doc.CreatedAt,
	}
}

type Detail struct {
	ID          uuid.UUID       `json:"id" swaggertype:"string" format:"uuid"`
	URL         string          `json:"url"`
	Source      string          `json:"source"`
	Text        string          `json:"text"`
	Entities    []domain.Entity `json:"entities"`
	Tags        []string        `json:"tags"`
	Severity    float64         `json:"severity"`
	Probability float64         `json:"probability"`
	Language    string          `json:"language,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewDetail(doc *domain.Document, text string) Detail {
	entities := doc.Entities
	if entities == nil {
		entities = []domain.Entity{}
	}
	return Detail{
		ID:          doc.ID,
		URL:         doc.URL,
		Source:      doc.Source,
		Text:        text,
		Entities:    entities,
		Tags:        nonNilTags(doc.Tags),
		Severity:    doc.Severity,
		Probability: doc.Probability,
		Language:    doc.Language,
		CreatedAt:   doc.CreatedAt,
	}
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
