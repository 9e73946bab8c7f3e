package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcheck/internal/choices"
	"idcheck/internal/platform/logger"
)

func newRouter() chi.Router {
	r := chi.NewRouter()
	New(choices.Default(), logger.Nop()).Register(r)
	return r
}

func TestHandleCatalogs(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/choices", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp CatalogsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Catalogs, choices.Key{Country: "BR", Kind: "states"})
}

func TestHandleLookup(t *testing.T) {
	t.Run("known table", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/choices/ke/provinces", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp TableResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Choices, 8)
		assert.Equal(t, choices.Choice{Code: "110", Label: "Nairobi"}, resp.Choices[0])
	})

	t.Run("unknown table", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/choices/mt/localities", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "not_found", resp["error"])
	})
}
