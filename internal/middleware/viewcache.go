package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/pkg/revalidate"
	"github.com/redis/go-redis/v9"
)

const (
	defaultViewCacheTTL     = 5 * time.Minute
	defaultViewCacheMaxBody = 1 << 20 // 1 MiB
)

// ViewFunc maps a request to the logical view name it renders. Returning ""
// skips caching for that request.
type ViewFunc func(c *gin.Context) string

type cachedView struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	BodyBase64  string `json:"body_base64"`
}

type viewBodyWriter struct {
	gin.ResponseWriter
	body     []byte
	maxBody  int
	overflow bool
}

func (w *viewBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *viewBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *viewBodyWriter) capture(data []byte) {
	if w.overflow || len(data) == 0 {
		return
	}
	remaining := w.maxBody - len(w.body)
	if remaining <= 0 {
		w.overflow = true
		return
	}
	if len(data) > remaining {
		w.body = append(w.body, data[:remaining]...)
		w.overflow = true
		return
	}
	w.body = append(w.body, data...)
}

// ViewCache serves anonymous GET responses from redis until a write path
// marks the view stale. Keys follow the revalidate scheme so a MarkStale on
// the view drops every cached URI under it.
func ViewCache(rdb *redis.Client, view ViewFunc, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = defaultViewCacheTTL
	}
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method != http.MethodGet || IsAuthenticated(c) {
			c.Next()
			return
		}
		name := view(c)
		if name == "" {
			c.Next()
			return
		}

		cacheKey := revalidate.KeyPrefix + name + ":" + c.Request.URL.RequestURI()
		ctx := c.Request.Context()

		if raw, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil && len(raw) > 0 {
			var payload cachedView
			if json.Unmarshal(raw, &payload) == nil {
				if body, err := base64.StdEncoding.DecodeString(payload.BodyBase64); err == nil {
					if payload.ContentType == "" {
						payload.ContentType = "application/json; charset=utf-8"
					}
					c.Header("x-view-cache", "hit")
					c.Data(payload.Status, payload.ContentType, body)
					c.Abort()
					return
				}
			}
		}

		buffer := &viewBodyWriter{ResponseWriter: c.Writer, maxBody: defaultViewCacheMaxBody}
		c.Writer = buffer
		c.Next()

		status := c.Writer.Status()
		if status != http.StatusOK || buffer.overflow || len(buffer.body) == 0 {
			return
		}

		payload := cachedView{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			BodyBase64:  base64.StdEncoding.EncodeToString(buffer.body),
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return
		}
		_ = rdb.Set(ctx, cacheKey, raw, ttl).Err()
	}
}
