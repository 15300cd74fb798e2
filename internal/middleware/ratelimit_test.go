package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// countingListener accepts connections just to count dial attempts.
func countingListener(t *testing.T, dials *atomic.Int32) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			dials.Add(1)
			_ = conn.Close()
		}
	}()
	return ln
}

func newLimitedRouter(rdb *redis.Client, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authenticated {
		r.Use(func(c *gin.Context) {
			c.Set(ContextKeyUserID, "user-1")
			c.Next()
		})
	}
	r.Use(RateLimit(rdb))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimitSkipsAuthenticatedRequests(t *testing.T) {
	req := require.New(t)
	var dials atomic.Int32
	ln := countingListener(t, &dials)

	rdb := redis.NewClient(&redis.Options{Addr: ln.Addr().String(), DialTimeout: 100 * time.Millisecond})
	r := newLimitedRouter(rdb, true)

	// Given a request whose session was already resolved upstream
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Then the limiter never contacts Redis
	req.Equal(http.StatusOK, w.Code)
	req.Equal(int32(0), dials.Load())
}

func TestRateLimitFailsOpenWhenRedisUnreachable(t *testing.T) {
	req := require.New(t)

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := newLimitedRouter(rdb, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	req.Equal(http.StatusOK, w.Code)
}
