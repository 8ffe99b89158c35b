package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Avi0425/Paper-Forge-AI/internal/filestore"
)

type stubStore struct {
	kind    string
	files   map[string][]byte
	openErr error
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func (s *stubStore) Type() string { return s.kind }

func (s *stubStore) Save(ctx context.Context, key string, r filestore.ReadSeekCloser, size int64) error {
	return nil
}

func (s *stubStore) Open(ctx context.Context, key string) (filestore.ReadSeekCloser, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	data, ok := s.files[key]
	if !ok {
		return nil, errors.New("no such artifact")
	}
	return memFile{bytes.NewReader(data)}, nil
}

func newArtifactRouter(store filestore.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/artifacts/:key", NewArtifactHandler(store).Get)
	return router
}

func TestArtifactGetServesStoredFile(t *testing.T) {
	store := &stubStore{kind: "local", files: map[string][]byte{
		"p1.html": []byte("<h1>Quantum Paper</h1>"),
	}}
	router := newArtifactRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artifacts/p1.html", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "<h1>Quantum Paper</h1>", w.Body.String())
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artifacts/missing.html", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestArtifactGetWriteOnlyStore(t *testing.T) {
	store := &stubStore{kind: "s3", openErr: filestore.ErrOpenUnsupported}
	router := newArtifactRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artifacts/p1.md", nil))

	require.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestArtifactGetRejectsTraversal(t *testing.T) {
	router := newArtifactRouter(&stubStore{kind: "local"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/artifacts/"+"..%5Cetc", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
