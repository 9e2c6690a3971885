package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()

	store, err := NewConfigStore(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	require.NotNil(t, store)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, path, store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, DefaultFileName, store.Path())
}

func TestNewConfigStore_MissingFileIsNotAnError(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	_, ok := store.Get("feed_path")
	assert.False(t, ok)
}

// TestNewConfigStore_LoadCorruptedFile tests error handling when loading corrupted TOML
func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(path)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewBlankConfigStore_OverwritesCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("this is not valid TOML {{{[["), 0600))

	store := NewBlankConfigStore(path)
	assert.Empty(t, store.Keys())
	require.NoError(t, store.Set("title", "Changelog"))
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, reloaded.Keys())
}

func TestConfigStore_ReadsTopLevelKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	content := `
feed_path = "feeds/product.rss"
concurrency = 4
request_timeout = "45s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewConfigStore(path)
	require.NoError(t, err)

	assert.Equal(t, "feeds/product.rss", store.GetString("feed_path"))
	assert.Equal(t, 4, store.GetInt("concurrency"))
	assert.Equal(t, "45s", store.GetString("request_timeout"))
}

func TestConfigStore_FlattensTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	content := `
[fetch]
concurrency = 2

[fetch.limits]
max_body_bytes = 1024
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewConfigStore(path)
	require.NoError(t, err)

	assert.Equal(t, 2, store.GetInt("fetch.concurrency"))
	assert.Equal(t, 1024, store.GetInt("fetch.limits.max_body_bytes"))
	assert.Equal(t, []string{"fetch.concurrency", "fetch.limits.max_body_bytes"}, store.Keys())
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("indent_width", int64(2)))

	assert.Equal(t, "", store.GetString("indent_width"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt_Types(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("a", 3))
	require.NoError(t, store.Set("b", int64(7)))
	require.NoError(t, store.Set("c", "9"))

	assert.Equal(t, 3, store.GetInt("a"))
	assert.Equal(t, 7, store.GetInt("b"))
	assert.Equal(t, 0, store.GetInt("c"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("title", "Changelog"))
	require.NoError(t, store.Set("indent_width", 4))
	require.NoError(t, store.Set("fetch.user_agent", "bot/1.0"))
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(store.Path())
	require.NoError(t, err)

	assert.Equal(t, "Changelog", reloaded.GetString("title"))
	assert.Equal(t, 4, reloaded.GetInt("indent_width"))
	assert.Equal(t, "bot/1.0", reloaded.GetString("fetch.user_agent"))
}

func TestConfigStore_SaveWritesTables(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("fetch.concurrency", 2))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Contains(t, string(data), "[fetch]")
	assert.NotContains(t, string(data), "'fetch.concurrency'")
}

func TestConfigStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", DefaultFileName)
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("title", "x"))
	require.NoError(t, store.Save())

	assert.FileExists(t, path)
}

// TestConfigStore_Save_WriteFileError tests error handling when WriteFile fails
func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store := newTestStore(t)

	// A directory where the file should be makes the write fail
	require.NoError(t, os.Mkdir(store.Path(), 0700))
	require.NoError(t, store.Set("title", "x"))

	assert.Error(t, store.Save())
}

// TestConfigStore_Load_InvalidTOML tests error handling when loading invalid TOML
func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("stale", "value"))
	require.NoError(t, os.WriteFile(store.Path(), nil, 0600))

	require.NoError(t, store.Load())

	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("concurrency", n)
			_ = store.GetInt("concurrency")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("concurrency")
	assert.True(t, ok)
}

func TestUnflattenMap(t *testing.T) {
	got := unflattenMap(map[string]any{
		"title":             "x",
		"fetch.concurrency": 2,
		"fetch.user_agent":  "bot",
	})

	assert.Equal(t, map[string]any{
		"title": "x",
		"fetch": map[string]any{
			"concurrency": 2,
			"user_agent":  "bot",
		},
	}, got)
}
