package writers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
	"golden_age": [
		{"id": 1, "name": "Alexander Pushkin", "born": 1799},
		{"id": "gogol", "name": "Nikolai Gogol"}
	],
	"silver_age": [
		{"id": 7, "name": "Anna Akhmatova"}
	]
}`

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "writers.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))
	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	return catalog
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join(t.TempDir(), "writers.json"))
	require.NoError(t, err)

	all := catalog.All()
	assert.Len(t, all, len(Epochs))
	for _, e := range Epochs {
		assert.Empty(t, all[e])
	}
}

func TestCatalog_Get(t *testing.T) {
	catalog := loadTestCatalog(t)

	tests := []struct {
		id       string
		wantName string
		wantErr  bool
	}{
		{id: "1", wantName: "Alexander Pushkin"},
		{id: "gogol", wantName: "Nikolai Gogol"},
		{id: "7", wantName: "Anna Akhmatova"},
		{id: "99", wantErr: true},
		{id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w, err := catalog.Get(tt.id)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWriterNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, w["name"])
		})
	}
}

func TestService_Routes(t *testing.T) {
	mux := http.NewServeMux()
	NewService(loadTestCatalog(t)).RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/writers", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var all map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all["golden_age"], 2)
	assert.Empty(t, all["soviet_period"])

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/writer/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Alexander Pushkin","born":1799}`, rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/writer/404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}
