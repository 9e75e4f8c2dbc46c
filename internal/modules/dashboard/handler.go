package dashboard

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/dashboard", authMW)

	g.GET("/stats", h.stats)
	g.GET("/recent-posts", h.recentPosts)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) recentPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	posts, err := h.svc.RecentPosts(middleware.CurrentUserID(c), limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, posts)
}
