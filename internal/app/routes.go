package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/modules/auth"
	"github.com/inkwell-blog/core/internal/modules/content/category"
	"github.com/inkwell-blog/core/internal/modules/content/comment"
	"github.com/inkwell-blog/core/internal/modules/content/post"
	"github.com/inkwell-blog/core/internal/modules/content/tag"
	"github.com/inkwell-blog/core/internal/modules/dashboard"
	"github.com/inkwell-blog/core/internal/modules/profile"
	"github.com/inkwell-blog/core/internal/modules/storage/image"
	"github.com/inkwell-blog/core/internal/pkg/response"
	"github.com/inkwell-blog/core/internal/pkg/revalidate"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "inkwell-core",
		"version": "1.0.0",
	}

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(a.rc.Raw()))
	r.Use(middleware.Idempotence(a.rc.Raw()))

	signal := revalidate.New(a.rc.Raw())

	commentSvc := comment.NewService(db, a.cfg.Comment, signal)
	postSvc := post.NewService(db, signal)
	categorySvc := category.NewService(db, signal)
	tagSvc := tag.NewService(db, signal)
	authSvc := auth.NewService(db)
	profileSvc := profile.NewService(db)
	dashboardSvc := dashboard.NewService(db)

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(db))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	// Anonymous reads of public views are served from the redis view cache
	// until a write marks them stale.
	if !a.cfg.IsDev() {
		viewTTL := 5 * time.Minute
		postView := func(c *gin.Context) string {
			if slug := c.Param("slug"); slug != "" {
				return revalidate.PostView(slug)
			}
			return revalidate.PostListView()
		}
		listView := func(*gin.Context) string { return revalidate.PostListView() }

		api.Use(middleware.ViewCache(a.rc.Raw(), func(c *gin.Context) string {
			switch {
			case c.FullPath() == apiPrefix+"/posts",
				c.FullPath() == apiPrefix+"/posts/:slug",
				c.FullPath() == apiPrefix+"/posts/:slug/comments":
				return postView(c)
			case c.FullPath() == apiPrefix+"/categories",
				c.FullPath() == apiPrefix+"/tags":
				return listView(c)
			}
			return ""
		}, viewTTL))
	}

	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)
	profile.NewHandler(profileSvc).RegisterRoutes(api, authMW)
	post.NewHandler(postSvc, commentSvc).RegisterRoutes(api, authMW)
	category.NewHandler(categorySvc).RegisterRoutes(api, authMW)
	tag.NewHandler(tagSvc).RegisterRoutes(api, authMW)
	comment.NewHandler(commentSvc).RegisterRoutes(api, authMW)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(api, authMW)

	if store, err := image.NewS3Store(a.cfg.S3); err != nil {
		a.logger.Warn("s3 storage not configured, image uploads disabled", zap.Error(err))
	} else {
		imageSvc := image.NewService(db, store, signal, a.cfg.UploadMaxBytes())
		image.NewHandler(imageSvc).RegisterRoutes(api, authMW)
	}
}
