package pages

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	templateDir = "../../../web/templates"
	staticDir   = "../../../web/static"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	p, err := New(templateDir, staticDir)
	require.NoError(t, err)
	mux := http.NewServeMux()
	p.RegisterRoutes(mux)
	return mux
}

func TestPages_Render(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: `id="leaderboard"`},
		{path: "/writers", want: `id="epochs"`},
		{path: "/chess", want: `/static/js/chess.js`},
		{path: "/quiz", want: `id="quiz"`},
		{path: "/writers/pushkin", want: `data-writer-id="pushkin"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestPages_EscapesWriterID(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/writers/%22%3E%3Cscript%3E", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"><script>`)
}

func TestPages_UnknownPathNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPages_Static(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_MissingTemplates(t *testing.T) {
	_, err := New(t.TempDir(), "")
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LayoutFile), []byte(`{{template "content" .}}`), 0o644))
	_, err = New(dir, "")
	assert.Error(t, err)
}
