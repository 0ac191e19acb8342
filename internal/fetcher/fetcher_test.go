package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!doctype html>
<html>
<head><title>  Broadcasting   Act </title><style>body { color: red }</style></head>
<body>
  <script>var tracking = "ignored";</script>
  <h1>Part&nbsp;I</h1>
  <p>Licensees are
     liable for royalties.</p><p>Penalty applies.</p>
</body>
</html>`

func TestHTTPFetcher_Fetch(t *testing.T) {
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.UserAgent()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	page := New().Fetch(context.Background(), srv.URL)

	require.True(t, page.OK(), page.Error)
	assert.Equal(t, "Broadcasting Act", page.Title)
	assert.Contains(t, page.Text, "Licensees are liable for royalties. Penalty applies.")
	assert.NotContains(t, page.Text, "tracking")
	assert.NotContains(t, page.Text, "color: red")
	assert.NotContains(t, page.Text, "  ")
	assert.Equal(t, DefaultUserAgent, userAgent)
}

func TestHTTPFetcher_TitleFallsBackToURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>No title here</p></body></html>"))
	}))
	defer srv.Close()

	page := New().Fetch(context.Background(), srv.URL)

	require.True(t, page.OK())
	assert.Equal(t, srv.URL, page.Title)
	assert.Equal(t, "No title here", page.Text)
}

func TestHTTPFetcher_Failures(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		page := New().Fetch(context.Background(), srv.URL)
		assert.Equal(t, StatusError, page.Status)
		assert.Contains(t, page.Error, "404")
		assert.Empty(t, page.Text)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		page := New(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
		assert.False(t, page.OK())
		assert.NotEmpty(t, page.Error)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		page := New().Fetch(context.Background(), "ftp://example.org/file")
		assert.False(t, page.OK())
		assert.Contains(t, page.Error, "scheme")
	})
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a\n\tb   c \r\n"))
	assert.Equal(t, "", NormalizeWhitespace(" \n "))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("FETCH_READABILITY", "true")
	t.Setenv("FETCH_RATE_PER_SEC", "2.5")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.True(t, cfg.Readability)
	assert.Equal(t, 2.5, cfg.RatePerSec)

	f := NewFromConfig(*cfg)
	assert.True(t, f.readability)
	assert.NotNil(t, f.limiter)
}

func TestHTTPFetcher_ReadabilityArticle(t *testing.T) {
	paragraph := "<p>Every broadcasting licensee shall pay the royalties certified by the Board, " +
		"and a licensee that fails to file its returns on time is liable to the penalty set out in the tariff.</p>"
	page := `<html><head><title>Tariff</title></head><body>
<div class="footer">Contact us | Privacy | Site map</div>
<article><h1>Tariff for Commercial Radio</h1>` + strings.Repeat(paragraph, 6) + `</article>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	got := New(WithReadability()).Fetch(context.Background(), srv.URL)

	require.True(t, got.OK(), got.Error)
	assert.Equal(t, "Tariff", got.Title)
	assert.Contains(t, got.Text, "liable to the penalty set out in the tariff.")
	assert.NotContains(t, got.Text, "Privacy")
}
