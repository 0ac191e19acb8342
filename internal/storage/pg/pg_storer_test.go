package pg

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	pgtesting "github.com/DjordjeVuckovic/reg-hunter/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorer(t *testing.T) *Storer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	container := pgtesting.NewPGContainerWithCleanup(ctx, t)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s, err := NewStorer(pool)
	require.NoError(t, err)
	return s
}

func TestStorer_Lifecycle(t *testing.T) {
	s := newTestStorer(t)
	ctx := context.Background()

	doc, created, err := s.GetOrCreate(ctx, "https://example.org/act", domain.Document{
		URL:    "https://example.org/act",
		Source: "Act",
	})
	require.NoError(t, err)
	assert.True(t, created)
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
	assert.Equal(t, []string{"Copyright", "Broadcasting"}, again.Tags)
	assert.Equal(t, []domain.Entity{{Word: "SOCAN", Label: "ORG"}}, again.Entities)

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

	t.Run("list", func(t *testing.T) {
		_, _, err := s.GetOrCreate(ctx, "second", domain.Document{Source: "Second"})
		require.NoError(t, err)

		total, docs, err := s.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, docs, 2)
		assert.Equal(t, "Second", docs[0].Source)
	})
}
