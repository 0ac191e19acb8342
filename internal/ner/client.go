package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/DjordjeVuckovic/reg-hunter/pkg/stringsutil"
)

const defaultTimeout = 60 * time.Second

type ClientOption func(*Client)

// Client calls a token-classification endpoint that accepts
// {"inputs": text} and answers with grouped entities, as served by the
// Hugging Face inference toolkit.
type Client struct {
	endpoint url.URL
	http     *http.Client
	maxChars int
}

func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint: *u,
		http:     &http.Client{Timeout: defaultTimeout},
		maxChars: DefaultMaxChars,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithMaxChars(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxChars = n
		}
	}
}

type classifyRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

type groupedEntity struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
}

func (c *Client) Extract(ctx context.Context, text string) Result {
	if text == "" {
		return Result{Entities: []domain.Entity{}}
	}

	entities, err := c.classify(ctx, stringsutil.TruncateRunes(text, c.maxChars))
	if err != nil {
		slog.Error("Entity extraction failed", "error", err)
		return Result{Entities: []domain.Entity{}, Err: err}
	}

	return Result{Entities: entities}
}

func (c *Client) classify(ctx context.Context, text string) ([]domain.Entity, error) {
	body, err := json.Marshal(classifyRequest{
		Inputs:     text,
		Parameters: map[string]any{"aggregation_strategy": "simple"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	var grouped []groupedEntity
	if err := json.Unmarshal(respBody, &grouped); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	entities := make([]domain.Entity, 0, len(grouped))
	for _, g := range grouped {
		entities = append(entities, domain.Entity{Word: g.Word, Label: g.EntityGroup})
	}
	return entities, nil
}
