package transport

import (
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientDefaults(t *testing.T) {
	c, err := NewHTTPClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, c.Timeout)
}

func TestNewHTTPClientTrustsCA(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	caPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, caPEM, 0o600))

	c, err := NewHTTPClient(Config{CACertPath: path})
	require.NoError(t, err)

	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestNewHTTPClientBadCA(t *testing.T) {
	_, err := NewHTTPClient(Config{CACertData: []byte("not a certificate")})
	assert.Error(t, err)

	_, err = NewHTTPClient(Config{CACertPath: filepath.Join(t.TempDir(), "missing.pem")})
	assert.Error(t, err)
}
