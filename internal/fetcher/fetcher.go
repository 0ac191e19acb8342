package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	StatusOK    = "ok"
	StatusError = "error"

	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

	maxBodyBytes = 64 << 20
)

var whitespace = regexp.MustCompile(`\s+`)

// Page is the outcome of a fetch. Failures are reported through Status and
// Error, never as a Go error.
type Page struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (p Page) OK() bool {
	return p.Status == StatusOK
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) Page
}

type Option func(*HTTPFetcher)

type HTTPFetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	readability bool
	limiter     *rate.Limiter
}

func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{},
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

func WithHttpClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithReadability narrows extraction to the main article content.
func WithReadability() Option {
	return func(f *HTTPFetcher) {
		f.readability = true
	}
}

// WithRateLimit caps outgoing requests per second across all callers.
func WithRateLimit(perSecond float64) Option {
	return func(f *HTTPFetcher) {
		if perSecond > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) Page {
	page, err := f.fetch(ctx, rawURL)
	if err != nil {
		slog.Error("Scrape failed", "url", rawURL, "error", err)
		return Page{URL: rawURL, Status: StatusError, Error: err.Error()}
	}
	return *page
}

func (f *HTTPFetcher) fetch(ctx context.Context, rawURL string) (*Page, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", pageURL.Scheme)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	body, err := f.get(ctx, pageURL.String())
	if err != nil {
		return nil, err
	}

	title, text, err := f.extract(body, pageURL)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = rawURL
	}

	return &Page{URL: rawURL, Title: title, Text: text, Status: StatusOK}, nil
}

func (f *HTTPFetcher) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (f *HTTPFetcher) extract(body []byte, pageURL *url.URL) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	title := NormalizeWhitespace(doc.Find("title").First().Text())

	if f.readability {
		if t, text, ok := extractArticle(body, pageURL); ok {
			if title == "" {
				title = t
			}
			return title, text, nil
		}
		slog.Debug("Readability found no article, using full page text", "url", pageURL.String())
	}

	return title, documentText(doc), nil
}

func extractArticle(body []byte, pageURL *url.URL) (string, string, bool) {
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", "", false
	}

	text := documentText(doc)
	if text == "" {
		return "", "", false
	}
	return NormalizeWhitespace(article.Title), text, true
}

// documentText returns every text node of the document separated by single
// spaces, skipping script and style content.
func documentText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, template").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		collectText(n, &b)
	}
	return NormalizeWhitespace(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// NormalizeWhitespace collapses runs of whitespace into one space.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
