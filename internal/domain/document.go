package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdentityPrefixLen is the number of leading characters of a text-only
// submission used as its identity key. Distinct texts sharing this prefix
// resolve to the same document.
const IdentityPrefixLen = 50

const DefaultSource = "User Input"

// TextKeyPrefix namespaces text-derived identity keys so they never match a URL.
const TextKeyPrefix = "text:"

type Entity struct {
	Word  string `json:"word"`
	Label string `json:"label"`
}

type Document struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source"`
	IdentityKey string    `json:"identity_key"`

	// Exactly one of RawText and ContentPath holds the full text.
	RawText     string `json:"raw_text,omitempty"`
	ContentPath string `json:"content_path,omitempty"`
	ContentSize int64  `json:"content_size"`

	Entities    []Entity `json:"entities"`
	Tags        []string `json:"tags"`
	Severity    float64  `json:"severity"`
	Probability float64  `json:"probability"`
	Language    string   `json:"language,omitempty"`

	// Version is bumped by every successful save and guards against lost updates.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDocument returns an unsaved document for the given identity key. An ID set
// in defaults is kept.
func NewDocument(key string, defaults Document) *Document {
	now := time.Now().UTC()
	d := defaults
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.IdentityKey = key
	d.Version = 0
	d.CreatedAt = now
	d.UpdatedAt = now
	return &d
}

// Label returns the human-facing name of the document, falling back to its URL.
func (d *Document) Label() string {
	if d.Source != "" {
		return d.Source
	}
	return d.URL
}

// IsBlobBacked reports whether the full text lives in the blob store.
func (d *Document) IsBlobBacked() bool {
	return d.RawText == "" && d.ContentPath != ""
}

// IdentityKey derives the key used to match re-submissions: the URL when
// given, otherwise TextKeyPrefix plus the leading IdentityPrefixLen characters
// of the text.
func IdentityKey(url, text string) string {
	if url != "" {
		return url
	}
	r := []rune(text)
	if len(r) > IdentityPrefixLen {
		r = r[:IdentityPrefixLen]
	}
	return TextKeyPrefix + string(r)
}
