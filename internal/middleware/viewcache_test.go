package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/pkg/revalidate"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestViewCacheServesSecondRequestFromCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)

	hits := 0
	r := gin.New()
	r.GET("/posts/:slug", ViewCache(rdb, func(c *gin.Context) string {
		return revalidate.PostView(c.Param("slug"))
	}, time.Minute), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"slug": c.Param("slug")})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/posts/hello", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "hello")
	}
	require.Equal(t, 1, hits)
}

func TestViewCacheInvalidatedByMarkStale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)

	hits := 0
	r := gin.New()
	r.GET("/posts/:slug", ViewCache(rdb, func(c *gin.Context) string {
		return revalidate.PostView(c.Param("slug"))
	}, time.Minute), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"n": hits})
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/posts/hello", nil))
	revalidate.New(rdb).MarkStale(context.Background(), revalidate.PostView("hello"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/posts/hello", nil))

	require.Equal(t, 2, hits)
}

func TestViewCacheSkipsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedis(t)

	hits := 0
	r := gin.New()
	r.GET("/missing", ViewCache(rdb, func(c *gin.Context) string { return "missing" }, time.Minute), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusNotFound, gin.H{"ok": 0})
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))
	require.Equal(t, 2, hits)
}
