package in_mem

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemStorer_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	first, created, err := s.GetOrCreate(ctx, "https://example.org", domain.Document{Source: "Example"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Example", first.Source)
	assert.EqualValues(t, 1, first.Version)

	again, created, err := s.GetOrCreate(ctx, "https://example.org", domain.Document{Source: "Other"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Example", again.Source)
}

func TestInMemStorer_SaveIsCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	doc, _, err := s.GetOrCreate(ctx, "key", domain.Document{})
	require.NoError(t, err)
	stale := *doc

	doc.Tags = []string{"Copyright"}
	require.NoError(t, s.Save(ctx, doc))
	assert.EqualValues(t, 2, doc.Version)

	stale.Tags = []string{"General"}
	err = s.Save(ctx, &stale)
	var ce *apperr.ConflictError
	require.ErrorAs(t, err, &ce)

	got, err := s.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Copyright"}, got.Tags)
}

func TestInMemStorer_GetMissing(t *testing.T) {
	_, err := NewInMemStorer().Get(context.Background(), uuid.New())

	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestInMemStorer_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()
	for _, key := range []string{"a", "b", "c", "d"} {
		_, _, err := s.GetOrCreate(ctx, key, domain.Document{Source: key})
		require.NoError(t, err)
	}

	total, docs, err := s.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, docs, 2)
	assert.Equal(t, "d", docs[0].Source)
	assert.Equal(t, "c", docs[1].Source)

	_, docs, err = s.List(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].Source)

	_, docs, err = s.List(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestInMemStorer_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer()

	doc, _, err := s.GetOrCreate(ctx, "k", domain.Document{Tags: []string{"General"}})
	require.NoError(t, err)
	doc.Tags[0] = "mutated"

	got, err := s.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"General"}, got.Tags)
}
