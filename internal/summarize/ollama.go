package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
)

const (
	defaultModel   = "llama3.2:3b"
	defaultTimeout = 120 * time.Second
)

type OllamaOption func(client *OllamaClient)

// OllamaClient summarizes windows through the Ollama generate endpoint with
// sampling disabled.
type OllamaClient struct {
	base  url.URL
	http  *http.Client
	model string
}

func NewOllamaClient(baseUrl string, opts ...OllamaOption) (*OllamaClient, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := &OllamaClient{
		base:  *base,
		model: defaultModel,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) OllamaOption {
	return func(client *OllamaClient) {
		client.http = httpClient
	}
}

func WithModel(model string) OllamaOption {
	return func(client *OllamaClient) {
		client.model = model
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (oc *OllamaClient) SummarizeWindow(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	if text == "" {
		return "", apperr.NewValidation("missing text to summarize")
	}

	req := generateRequest{
		Model:  oc.model,
		Prompt: buildPrompt(text, maxLength, minLength),
		Stream: false,
		Options: map[string]any{
			"temperature": 0,
			"seed":        0,
			"num_predict": maxLength,
		},
	}

	var resp generateResponse
	if err := oc.do(ctx, http.MethodPost, "/api/generate", req, &resp); err != nil {
		return "", err
	}

	return resp.Response, nil
}

func buildPrompt(text string, maxLength, minLength int) string {
	return fmt.Sprintf(
		"Summarize the following regulatory text in plain prose using between %d and %d tokens. "+
			"Keep obligations, prohibitions, penalties and the parties involved. Reply with the summary only.\n\n%s",
		minLength, maxLength, text)
}

func (oc *OllamaClient) do(ctx context.Context, method, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := oc.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := oc.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
