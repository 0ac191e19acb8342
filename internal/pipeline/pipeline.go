package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/DjordjeVuckovic/reg-hunter/internal/fetcher"
	"github.com/DjordjeVuckovic/reg-hunter/internal/langdetect"
	"github.com/DjordjeVuckovic/reg-hunter/internal/ner"
	"github.com/DjordjeVuckovic/reg-hunter/internal/scoring"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/blob"
	"github.com/google/uuid"
)

// Summarizer reduces a text to a bounded-length summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Submission is a document handed to the pipeline. At least one of Text and
// URL must be set; Text wins when both are.
type Submission struct {
	Text  string `json:"text,omitempty" yaml:"text"`
	URL   string `json:"url,omitempty" yaml:"url"`
	Title string `json:"title,omitempty" yaml:"title"`
}

// Preview is the analysis of a submission without persistence.
type Preview struct {
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Summary     string          `json:"text"`
	Tags        []string        `json:"tags"`
	Entities    []domain.Entity `json:"entities"`
	Severity    float64         `json:"severity"`
	Probability float64         `json:"probability"`
}

type Result struct {
	Document *domain.Document
	Created  bool
}

type Pipeline struct {
	fetcher    fetcher.Fetcher
	summarizer Summarizer
	extractor  ner.Extractor
	detector   langdetect.Detector
	docs       storage.DocumentStore
	blobs      storage.BlobStore
	cfg        Config
}

type Option func(*Pipeline)

func WithDetector(d langdetect.Detector) Option {
	return func(p *Pipeline) {
		p.detector = d
	}
}

func WithConfig(cfg Config) Option {
	return func(p *Pipeline) {
		if cfg.BlobThreshold > 0 {
			p.cfg = cfg
		}
	}
}

func New(
	f fetcher.Fetcher,
	s Summarizer,
	e ner.Extractor,
	docs storage.DocumentStore,
	blobs storage.BlobStore,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		fetcher:    f,
		summarizer: s,
		extractor:  e,
		detector:   langdetect.NopDetector{},
		docs:       docs,
		blobs:      blobs,
		cfg:        DefaultConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// analysis is everything derived from a submission before it is stored.
type analysis struct {
	text    string
	label   string
	summary string
	score   scoring.Score
	ents    []domain.Entity
}

func (p *Pipeline) analyze(ctx context.Context, sub Submission) (*analysis, error) {
	if sub.Text == "" && sub.URL == "" {
		return nil, apperr.NewValidation("provide either url or text")
	}

	a := &analysis{text: sub.Text, label: sub.Title}

	if sub.Text == "" {
		page := p.fetcher.Fetch(ctx, sub.URL)
		if !page.OK() {
			slog.Warn("Fetch failed", "url", sub.URL, "error", page.Error)
			return nil, apperr.NewFetch(sub.URL, page.Error)
		}
		a.text = page.Text
		if a.label == "" {
			a.label = page.Title
		}
		if a.label == "" {
			a.label = sub.URL
		}
	}
	if a.label == "" {
		a.label = domain.DefaultSource
	}

	summary, err := p.summarizer.Summarize(ctx, a.text)
	if err != nil {
		return nil, err
	}
	a.summary = summary
	a.score = scoring.Evaluate(summary)

	res := p.extractor.Extract(ctx, summary)
	if !res.OK() {
		slog.Warn("Entity extraction failed, continuing without entities", "error", res.Err)
	}
	a.ents = res.Entities
	if a.ents == nil {
		a.ents = []domain.Entity{}
	}

	return a, nil
}

// Preview analyzes a submission and returns the summary with its metadata.
// Nothing is persisted.
func (p *Pipeline) Preview(ctx context.Context, sub Submission) (*Preview, error) {
	a, err := p.analyze(ctx, sub)
	if err != nil {
		return nil, err
	}
	return &Preview{
		URL:         sub.URL,
		Title:       a.label,
		Summary:     a.summary,
		Tags:        a.score.Tags,
		Entities:    a.ents,
		Severity:    a.score.Severity,
		Probability: a.score.Probability,
	}, nil
}

// Process analyzes a submission and stores it, updating the existing document
// with the same identity key if there is one.
func (p *Pipeline) Process(ctx context.Context, sub Submission) (*Result, error) {
	a, err := p.analyze(ctx, sub)
	if err != nil {
		return nil, err
	}

	key := domain.IdentityKey(sub.URL, a.text)
	id := p.candidateID(key)
	size := int64(len(a.text))

	// The full text is in place before the record can exist, so a failed
	// create never leaves a document without content.
	content := domain.Document{RawText: a.text}
	if size > p.cfg.BlobThreshold {
		path := blobPath(id)
		if err := p.blobs.Write(ctx, path, []byte(a.text)); err != nil {
			return nil, fmt.Errorf("failed to store document text: %w", err)
		}
		content = domain.Document{ContentPath: path}
	}

	doc, created, err := p.docs.GetOrCreate(ctx, key, domain.Document{
		ID:          id,
		URL:         sub.URL,
		Source:      a.label,
		RawText:     content.RawText,
		ContentPath: content.ContentPath,
		ContentSize: size,
		Entities:    a.ents,
		Tags:        a.score.Tags,
		Severity:    a.score.Severity,
		Probability: a.score.Probability,
		Language:    p.detector.Detect(a.text),
	})
	if err != nil {
		p.discardBlob(ctx, content.ContentPath)
		return nil, fmt.Errorf("failed to resolve document: %w", err)
	}

	if !created {
		if err := p.update(ctx, doc, sub, a, content, size); err != nil {
			return nil, err
		}
	}

	slog.Info("Document processed",
		"id", doc.ID,
		"created", created,
		"source", doc.Source,
		"size", doc.ContentSize,
		"blob", doc.IsBlobBacked(),
		"tags", doc.Tags,
	)
	return &Result{Document: doc, Created: created}, nil
}

// update overwrites an existing document with a new analysis. A blob written
// under another id is moved to the document's own directory.
func (p *Pipeline) update(ctx context.Context, doc *domain.Document, sub Submission, a *analysis, content domain.Document, size int64) error {
	if sub.URL != "" {
		doc.URL = sub.URL
	}
	doc.Source = a.label
	doc.ContentSize = size
	doc.Entities = a.ents
	doc.Tags = a.score.Tags
	doc.Severity = a.score.Severity
	doc.Probability = a.score.Probability
	doc.Language = p.detector.Detect(a.text)

	stalePath := doc.ContentPath
	newPath := content.ContentPath
	if newPath != "" && !strings.HasPrefix(newPath, blobDir(doc.ID)) {
		moved := blobPath(doc.ID)
		err := p.blobs.Write(ctx, moved, []byte(a.text))
		p.discardBlob(ctx, newPath)
		if err != nil {
			return fmt.Errorf("failed to store document text: %w", err)
		}
		newPath = moved
	}
	doc.ContentPath = newPath
	doc.RawText = content.RawText

	if err := p.docs.Save(ctx, doc); err != nil {
		if newPath != stalePath {
			p.discardBlob(ctx, newPath)
		}
		return err
	}

	if stalePath != "" && stalePath != newPath {
		p.deleteBlob(ctx, stalePath)
	}
	return nil
}

// candidateID is the id a new document for key will get. Stores that derive
// ids from the key report theirs so the blob lands in the right directory.
func (p *Pipeline) candidateID(key string) uuid.UUID {
	if r, ok := p.docs.(storage.KeyedIDs); ok {
		return r.DocumentID(key)
	}
	return uuid.New()
}

// FullText returns a document's complete text from wherever it is stored.
func (p *Pipeline) FullText(ctx context.Context, doc *domain.Document) (string, error) {
	if !doc.IsBlobBacked() {
		return doc.RawText, nil
	}
	return blob.ReadPrefix(ctx, p.blobs, doc.ContentPath, 0)
}

func (p *Pipeline) deleteBlob(ctx context.Context, path string) {
	if err := p.blobs.Delete(ctx, path); err != nil {
		slog.Error("Failed to delete stale blob", "path", path, "error", err)
	}
}

func (p *Pipeline) discardBlob(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := p.blobs.Delete(ctx, path); err != nil {
		slog.Error("Failed to delete unreferenced blob", "path", path, "error", err)
	}
}

func blobDir(id uuid.UUID) string {
	return fmt.Sprintf("fetched/%s/", id)
}

func blobPath(id uuid.UUID) string {
	return blobDir(id) + strings.ReplaceAll(uuid.NewString(), "-", "") + ".txt"
}
