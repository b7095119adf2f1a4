package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

func TestSearchCmd_RequiresQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestSearchCmd_Table(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("search", "--no-fuzzy", "guard")

	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "[1] SafeAI Guard (product,")
	assert.Contains(t, out, "/products/safeai-guard")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("search", "--no-fuzzy", "zzqxv")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("search", "--json", "--limit", "2", "security")
	require.NoError(t, err)

	var results []domain.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 2)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestSearchCmd_TypeFilter(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("search", "--json", "--type", "page", "security")
	require.NoError(t, err)

	var results []domain.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, domain.DocumentTypePage, r.Document.Type)
	}
}

func TestSearchCmd_InvalidType(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search", "--type", "video", "security")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --type")
	assert.Contains(t, err.Error(), "whitepaper")
}

func TestTypeList(t *testing.T) {
	assert.Equal(t, "page, blog, docs, product, whitepaper, learn", typeList())
}
