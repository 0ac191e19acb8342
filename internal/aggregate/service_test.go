package aggregate

import (
	"context"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/reg-hunter/internal/domain"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/blob"
	"github.com/DjordjeVuckovic/reg-hunter/internal/storage/in_mem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveDoc(t *testing.T, store *in_mem.InMemStorer, key string, mutate func(*domain.Document)) {
	t.Helper()
	ctx := context.Background()
	doc, _, err := store.GetOrCreate(ctx, key, domain.Document{})
	require.NoError(t, err)
	mutate(doc)
	require.NoError(t, store.Save(ctx, doc))
}

func TestService_Visualization(t *testing.T) {
	ctx := context.Background()
	docs := in_mem.NewInMemStorer()
	blobs := blob.NewStoreFs(afero.NewMemMapFs())

	saveDoc(t, docs, "first", func(d *domain.Document) {
		d.Source = "Inline Act"
		d.RawText = "inline words"
		d.Tags = []string{"General"}
	})

	longText := strings.Repeat("x", BlobSnippetChars) + " tail beyond snippet"
	require.NoError(t, blobs.Write(ctx, "fetched/a/blob.txt", []byte(longText)))
	saveDoc(t, docs, "second", func(d *domain.Document) {
		d.Source = "Blob Act"
		d.ContentPath = "fetched/a/blob.txt"
		d.Tags = []string{"Copyright"}
	})

	saveDoc(t, docs, "third", func(d *domain.Document) {
		d.Source = "Missing Blob"
		d.ContentPath = "fetched/b/gone.txt"
		d.Tags = []string{"Broadcasting"}
	})

	svc := NewService(docs, blobs)
	v, err := svc.Visualization(ctx)
	require.NoError(t, err)

	require.Len(t, v.NetworkNodes, 3)
	assert.Equal(t, "Missing Blob", v.NetworkNodes[0].Label)
	assert.Equal(t, "Blob Act", v.NetworkNodes[1].Label)
	assert.Equal(t, "Inline Act", v.NetworkNodes[2].Label)

	words := map[string]int{}
	for _, w := range v.WordFreq {
		words[w.Word] = w.Count
	}
	assert.Equal(t, 1, words["inline"])
	assert.Equal(t, 1, words[strings.Repeat("x", BlobSnippetChars)])
	assert.NotContains(t, words, "tail")
	assert.NotContains(t, words, "beyond")
}

func TestService_SnapshotPages(t *testing.T) {
	docs := in_mem.NewInMemStorer()
	for i := 0; i < snapshotPageSize+3; i++ {
		saveDoc(t, docs, strings.Repeat("k", i+1), func(d *domain.Document) {
			d.Tags = []string{"General"}
		})
	}

	inputs, err := NewService(docs, blob.NewStoreFs(afero.NewMemMapFs())).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, inputs, snapshotPageSize+3)
}
