package logo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/beatgraph/internal/team"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

func logoServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if strings.HasSuffix(r.URL.Path, "missing.png") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPath(t *testing.T) {
	s := NewStore("/tmp/logos", nil)
	assert.Equal(t, filepath.Join("/tmp/logos", "Auburn.png"), s.Path("Auburn"))
	assert.Equal(t, filepath.Join("/tmp/logos", "Texas A&M.png"), s.Path("Texas A&M"))
	assert.Equal(t, filepath.Join("/tmp/logos", "a-b.png"), s.Path("a/b"))
}

func TestEnsure_DownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	server := logoServer(t, &hits)
	s := NewStore(filepath.Join(t.TempDir(), "logos"), nil)

	ok, err := s.Contains("Auburn")
	require.NoError(t, err)
	assert.False(t, ok)

	path, err := s.Ensure(context.Background(), "Auburn", server.URL+"/2.png")
	require.NoError(t, err)
	assert.Equal(t, s.Path("Auburn"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	_, err = s.Ensure(context.Background(), "Auburn", server.URL+"/2.png")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestEnsure_Errors(t *testing.T) {
	var hits atomic.Int32
	server := logoServer(t, &hits)
	s := NewStore(t.TempDir(), nil)

	_, err := s.Ensure(context.Background(), "Nowhere", "")
	assert.ErrorIs(t, err, ErrNoLogoURL)

	_, err = s.Ensure(context.Background(), "Gone", server.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	ok, err := s.Contains("Gone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnsureAll(t *testing.T) {
	var hits atomic.Int32
	server := logoServer(t, &hits)
	s := NewStore(t.TempDir(), nil)

	teams := []*team.Team{
		{Name: "Auburn", LogoURL: server.URL + "/2.png"},
		{Name: "Alabama", LogoURL: server.URL + "/333.png"},
		{Name: "Gone", LogoURL: server.URL + "/missing.png"},
		{Name: "Blank"},
	}

	paths := s.EnsureAll(context.Background(), teams)
	assert.Len(t, paths, 2)
	assert.Equal(t, s.Path("Auburn"), paths["Auburn"])
	assert.Equal(t, s.Path("Alabama"), paths["Alabama"])
	assert.NotContains(t, paths, "Gone")
	assert.NotContains(t, paths, "Blank")
}
