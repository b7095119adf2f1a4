package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".sitesearch", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nestedPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Typed(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("search.engine", "bleve"))
	require.NoError(t, store.Set("search.limit", 25))
	require.NoError(t, store.Set("search.fuzzy", true))
	require.NoError(t, store.Set("server.rate_limit", 2.5))
	require.NoError(t, store.Set("server.cors_origins", []string{"https://a", "https://b"}))

	assert.Equal(t, "bleve", store.GetString("search.engine"))
	assert.Equal(t, 25, store.GetInt("search.limit"))
	assert.True(t, store.GetBool("search.fuzzy"))
	assert.InDelta(t, 2.5, store.GetFloat("server.rate_limit"), 1e-9)
	assert.Equal(t, []string{"https://a", "https://b"}, store.GetStringSlice("server.cors_origins"))

	// Mismatched types read as zero values.
	assert.Empty(t, store.GetString("search.limit"))
	assert.Zero(t, store.GetInt("search.engine"))
	assert.False(t, store.GetBool("search.engine"))
	assert.Zero(t, store.GetFloat("search.engine"))
	assert.Nil(t, store.GetStringSlice("search.engine"))
	assert.Nil(t, store.GetStringSlice("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("search.limit", 10))
	require.NoError(t, store.Set("server.addr", ":9000"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[search]")
	assert.Contains(t, string(raw), "[server]")
	assert.NotContains(t, string(raw), "search.limit")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[search]
limit = 50
engine = "bleve"

[server]
rate_limit = 5
cors_origins = ["https://perfecxion.ai"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 50, store.GetInt("search.limit"))
	assert.Equal(t, "bleve", store.GetString("search.engine"))
	assert.InDelta(t, 5.0, store.GetFloat("server.rate_limit"), 1e-9)
	assert.Equal(t, []string{"https://perfecxion.ai"}, store.GetStringSlice("server.cors_origins"))
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("content.dir", "./content"))
	require.NoError(t, store.Set("content.watch", false))
	require.NoError(t, store.Set("server.burst", int64(42)))
	require.NoError(t, store.Set("server.rate_limit", 3.14159))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "./content", reloaded.GetString("content.dir"))
	assert.False(t, reloaded.GetBool("content.watch"))
	_, ok := reloaded.Get("content.watch")
	assert.True(t, ok)
	assert.Equal(t, 42, reloaded.GetInt("server.burst"))
	assert.InDelta(t, 3.14159, reloaded.GetFloat("server.rate_limit"), 1e-9)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("search.limit", 5))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["storage.dir"] = "/var/lib/sitesearch"
	store.mu.Unlock()
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/sitesearch", reloaded.GetString("storage.dir"))
}

func TestConfigStore_Set_WriteFailureRollsBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("search.limit", 5))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("search.limit", 9)
	assert.Error(t, err)
	assert.Equal(t, 5, store.GetInt("search.limit"))

	err = store.Set("server.addr", ":1")
	assert.Error(t, err)
	_, ok := store.Get("server.addr")
	assert.False(t, ok)
}

func TestConfigStore_SetUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# Just a comment\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
	require.NoError(t, store.Set("search.limit", 3))
	assert.Equal(t, 3, store.GetInt("search.limit"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.limit", n+1)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.limit")
		}()
	}
	wg.Wait()

	assert.Positive(t, store.GetInt("search.limit"))
}

func TestNestMap(t *testing.T) {
	got := nestMap(map[string]any{
		"search.limit": 1,
		"search":       "shadow",
		"top":          true,
		"a.b.c":        "deep",
	})

	assert.Equal(t, map[string]any{
		"search": "shadow",
		"top":    true,
		"a":      map[string]any{"b": map[string]any{"c": "deep"}},
	}, got)
	assert.Equal(t, map[string]any{"a.b.c": "deep", "top": true}, flattenMap(map[string]any{
		"a":   map[string]any{"b": map[string]any{"c": "deep"}},
		"top": true,
	}, ""))
}
