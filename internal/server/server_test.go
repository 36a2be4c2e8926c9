package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/state"
)

// One server for the whole test: metrics register on the default registry,
// so a second NewServer in the same binary would collide.
func TestServerRoutes(t *testing.T) {
	s, err := NewServer(config.Default())
	require.NoError(t, err)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("health", func(t *testing.T) {
		rec := get("/health")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("demo search round trip", func(t *testing.T) {
		rec := get("/demo/search?q=father")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Results []state.SearchResult `json:"results"`
		}
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Results, 2, "one hit per sample chapter")
		assert.Contains(t, body.Results[0].Excerpt, "father")
		assert.Contains(t, body.Results[0].CFI, "chapter-1.xhtml")
		assert.Contains(t, body.Results[1].CFI, "chapter-2.xhtml")
	})

	t.Run("demo search requires query", func(t *testing.T) {
		rec := get("/demo/search")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("metrics exposed", func(t *testing.T) {
		rec := get("/metrics")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "folio_bridge_commands_sent_total")
	})
}
