package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func loggedRouter(core zapcore.Core) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	return r
}

func TestLoggerRecordsRequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := loggedRouter(core)
	r.GET("/posts", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/posts?page=2", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	require.Equal(t, int64(http.StatusOK), fields["status"])
	require.Equal(t, "GET", fields["method"])
	require.Equal(t, "/posts?page=2", fields["path"])
}

func TestLoggerEscalatesServerErrors(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := loggedRouter(core)
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": 0})
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/boom", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, zapcore.ErrorLevel, entry.Level)
	require.Contains(t, entry.ContextMap()["errors"], "db down")
}
