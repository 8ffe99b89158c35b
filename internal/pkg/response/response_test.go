package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeAlwaysHTTP200(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/missing", func(c *gin.Context) { Error(c, http.StatusNotFound, "not found") })
	router.GET("/ok", func(c *gin.Context) { Success(c, gin.H{"value": 1}) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "not found")
	require.Contains(t, w.Body.String(), "404")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "value")
}
