package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedRouter(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(log))
	r.GET("/api/v1/ping", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "user-1")
		c.Status(http.StatusOK)
	})
	r.GET("/assets/app.js", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestLoggerRecordsAPIRequestsWithUser(t *testing.T) {
	req := require.New(t)
	core, logs := observer.New(zap.InfoLevel)
	r := newLoggedRouter(zap.New(core))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	entries := logs.All()
	req.Len(entries, 1)
	fields := entries[0].ContextMap()
	req.Equal("/api/v1/ping", fields["path"])
	req.Equal(int64(http.StatusOK), fields["status"])
	req.Equal("user-1", fields["user"])
}

func TestLoggerSkipsAssetPaths(t *testing.T) {
	req := require.New(t)
	core, logs := observer.New(zap.InfoLevel)
	r := newLoggedRouter(zap.New(core))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))

	req.Equal(http.StatusOK, w.Code)
	req.Empty(logs.All())
}
