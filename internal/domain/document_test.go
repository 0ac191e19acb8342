package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentityKey(t *testing.T) {
	t.Run("url wins over text", func(t *testing.T) {
		assert.Equal(t, "https://example.org/a", IdentityKey("https://example.org/a", "some text"))
	})

	t.Run("short text is used whole", func(t *testing.T) {
		assert.Equal(t, "text:short", IdentityKey("", "short"))
	})

	t.Run("long text is truncated to prefix", func(t *testing.T) {
		text := strings.Repeat("a", 80)
		assert.Equal(t, TextKeyPrefix+strings.Repeat("a", IdentityPrefixLen), IdentityKey("", text))
	})

	t.Run("prefix counts characters not bytes", func(t *testing.T) {
		text := strings.Repeat("é", 60)
		key := strings.TrimPrefix(IdentityKey("", text), TextKeyPrefix)
		assert.Equal(t, IdentityPrefixLen, len([]rune(key)))
	})

	t.Run("text keys never match a url key", func(t *testing.T) {
		url := "https://example.org/act"
		assert.NotEqual(t, IdentityKey(url, ""), IdentityKey("", url))
	})
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("key", Document{Source: "Title", Version: 9})

	assert.NotEqual(t, uuid.Nil, doc.ID)
	assert.Equal(t, "key", doc.IdentityKey)
	assert.Equal(t, "Title", doc.Source)
	assert.Zero(t, doc.Version)
	assert.False(t, doc.CreatedAt.IsZero())

	id := uuid.New()
	assert.Equal(t, id, NewDocument("key", Document{ID: id}).ID, "supplied id is kept")
}

func TestDocument_Label(t *testing.T) {
	assert.Equal(t, "Source", (&Document{Source: "Source", URL: "u"}).Label())
	assert.Equal(t, "u", (&Document{URL: "u"}).Label())
}
