package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastpath/internal/lookup"
)

func newTestServer(t *testing.T) (*httptest.Server, *lookup.Handler) {
	t.Helper()
	h := lookup.NewHandler(false)
	srv := httptest.NewServer(NewServer("", false, 0, h).Handler())
	t.Cleanup(srv.Close)
	return srv, h
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestInsertAndSearch(t *testing.T) {
	srv, h := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/entries",
		`{"entries":[{"key":" Foo ","content":"c"},{"key":"abcdef","content":"X"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["size"])
	assert.Equal(t, 2, h.Size())

	resp, body = do(t, http.MethodGet, srv.URL+"/api/search?q=FOO", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ExactMatch", body["type"])
	assert.Equal(t, 1.0, body["confidence"])

	resp, body = do(t, http.MethodGet, srv.URL+"/api/search?q=abc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "PrefixMatch", body["type"])
	assert.Equal(t, 0.9, body["confidence"])
	entities := body["data"].(map[string]any)["entities"].([]any)
	assert.Equal(t, "X", entities[0].(map[string]any)["content"])

	resp, body = do(t, http.MethodGet, srv.URL+"/api/search?q=ab", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["matched"])
}

func TestReplaceAndClear(t *testing.T) {
	srv, _ := newTestServer(t)

	do(t, http.MethodPost, srv.URL+"/api/entries", `{"entries":[{"key":"old","content":"o"}]}`)
	resp, body := do(t, http.MethodPut, srv.URL+"/api/entries", `{"entries":[{"key":"new","content":"n"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["size"])

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/search?q=old", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/entries", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = do(t, http.MethodGet, srv.URL+"/api/size", "")
	assert.Equal(t, float64(0), body["size"])
}

func TestBadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/entries", `{bad`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/entries", `{"entries":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/search", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodPatch, srv.URL+"/api/entries", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
