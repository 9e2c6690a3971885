package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

func TestEntryStore_WriteRead(t *testing.T) {
	store := NewEntryStore("markdown")

	path, err := store.Write("v1-2-0", []byte("# V1.2.0"))
	require.NoError(t, err)
	assert.Equal(t, "markdown/v1-2-0.mdx", path)
	assert.Equal(t, "markdown", store.Dir())

	got, err := store.Read("v1-2-0")
	require.NoError(t, err)
	assert.Equal(t, "# V1.2.0", string(got))
	assert.Equal(t, 1, store.Len())
}

func TestEntryStore_WriteCopiesContent(t *testing.T) {
	store := NewEntryStore("markdown")
	content := []byte("original")

	_, err := store.Write("a", content)
	require.NoError(t, err)
	content[0] = 'X'

	got, err := store.Read("a")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}

func TestEntryStore_ReadMissing(t *testing.T) {
	store := NewEntryStore("markdown")

	_, err := store.Read("nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryStore_WriteDocument(t *testing.T) {
	store := NewEntryStore("markdown")

	_, ok := store.Document("changelog.mdx")
	assert.False(t, ok)

	require.NoError(t, store.WriteDocument("changelog.mdx", []byte("---\n")))

	doc, ok := store.Document("changelog.mdx")
	assert.True(t, ok)
	assert.Equal(t, "---\n", doc)
}
