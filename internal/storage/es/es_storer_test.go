package es

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	estesting "github.com/DjordjeVuckovic/reg-hunter/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorer(t *testing.T) *Storer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping elasticsearch integration test in short mode")
	}

	ctx := context.Background()
	container := estesting.NewESContainerWithCleanup(ctx, t)

	s, err := NewStorer(ctx, ClientConfig{
		Addresses: []string{container.Address},
		IndexName: "reg_documents_test",
	})
	require.NoError(t, err)
	return s
}

func TestStorer_Lifecycle(t *testing.T) {
	s := newTestStorer(t)
	ctx := context.Background()

	assert.True(t, s.Healthy(ctx))
	require.NoError(t, s.EnsureIndex(ctx), "second call is a no-op")

	doc, created, err := s.GetOrCreate(ctx, "https://example.org/act", domain.Document{
		URL:    "https://example.org/act",
		Source: "Act",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, documentID("https://example.org/act"), doc.ID)
	assert.EqualValues(t, 1, doc.Version)

	doc.RawText = "full text"
	doc.ContentSize = 9
	doc.Tags = []string{"Copyright", "Broadcasting"}
	doc.Entities = []domain.Entity{{Word: "SOCAN", Label: "ORG"}}
	doc.Severity = 4
	doc.Probability = 0.75
	require.NoError(t, s.Save(ctx, doc))
	assert.EqualValues(t, 2, doc.Version)

	again, created, err := s.GetOrCreate(ctx, "https://example.org/act", domain.Document{Source: "ignored"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, doc.ID, again.ID)
	assert.Equal(t, "Act", again.Source)
	assert.Equal(t, []string{"Copyright", "Broadcasting"}, again.Tags)
	assert.EqualValues(t, 2, again.Version)

	t.Run("stale save conflicts", func(t *testing.T) {
		stale := *again
		stale.Version = 1
		var ce *apperr.ConflictError
		assert.ErrorAs(t, s.Save(ctx, &stale), &ce)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := s.Get(ctx, uuid.New())
		var nf *apperr.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("list newest first", func(t *testing.T) {
		_, _, err := s.GetOrCreate(ctx, "second", domain.Document{Source: "Second"})
		require.NoError(t, err)

		total, docs, err := s.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, docs, 2)
		assert.Equal(t, "Second", docs[0].Source)

		_, page, err := s.List(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "Act", page[0].Source)
	})
}
