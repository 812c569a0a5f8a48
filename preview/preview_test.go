package preview

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func writeGraphFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoErrorf(t, os.WriteFile(path, []byte(content), 0o644), "WriteFile()")
	return path
}

func newTestPreview(t *testing.T, file string) *Preview {
	t.Helper()
	var stdout, stderr bytes.Buffer
	p, err := New(Config{File: file, Port: "0", Stdout: &stdout, Stderr: &stderr})
	require.NoErrorf(t, err, "New()")
	return p
}

func TestNewRejectsMissingFile(t *testing.T) {
	_, err := New(Config{File: filepath.Join(t.TempDir(), "missing.json"), Port: "0"})
	require.Errorf(t, err, "New() with a missing file")
}

func TestHandleIndexServesHTML(t *testing.T) {
	file := writeGraphFile(t, `{"nodes":[{"id":"a","content":"A"}],"edges":[]}`)
	p := newTestPreview(t, file)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	p.server.Handler.ServeHTTP(rec, req)

	assert.EqualValuesf(t, rec.Code, http.StatusOK, "status code")
	assert.Truef(t, strings.Contains(rec.Body.String(), "<html"), "body should contain the index page")
}

func TestHandleDiagramRendersGraph(t *testing.T) {
	file := writeGraphFile(t, `{"nodes":[{"id":"a","content":"hello"}],"edges":[]}`)
	p := newTestPreview(t, file)

	req := httptest.NewRequest(http.MethodGet, "/diagram", nil)
	rec := httptest.NewRecorder()
	p.server.Handler.ServeHTTP(rec, req)

	assert.EqualValuesf(t, rec.Code, http.StatusOK, "status code")
	assert.Truef(t, strings.Contains(rec.Body.String(), "hello"), "body should contain the rendered node content, got %q", rec.Body.String())
}

func TestHandleDiagramReportsInvalidGraph(t *testing.T) {
	file := writeGraphFile(t, `{"nodes":[{"id":"a","content":"A"}],"edges":[{"source":"a","target":"missing"}]}`)
	p := newTestPreview(t, file)

	req := httptest.NewRequest(http.MethodGet, "/diagram", nil)
	rec := httptest.NewRecorder()
	p.server.Handler.ServeHTTP(rec, req)

	assert.EqualValuesf(t, rec.Code, http.StatusInternalServerError, "status code")
}
