package comment

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/pkg/pagination"
	"github.com/inkwell-blog/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/comments")

	g.GET("/post/:postId", h.listByPost)
	g.GET("/post/:postId/count", h.count)

	a := g.Group("", authMW)
	a.GET("", h.listModeration)
	a.POST("", h.create)
	a.DELETE("/:id", h.delete)
	a.PATCH("/:id/status", h.updateStatus)

	// Public thread for a post page, addressed by slug.
	rg.GET("/posts/:slug/comments", h.listBySlug)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cm, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, cm)
}

func (h *Handler) listByPost(c *gin.Context) {
	comments, err := h.svc.ListForPost(c.Param("postId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, comments)
}

func (h *Handler) listBySlug(c *gin.Context) {
	comments, err := h.svc.ListBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, comments)
}

func (h *Handler) count(c *gin.Context) {
	n, err := h.svc.CountApproved(c.Param("postId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.JSON(200, gin.H{"count": n})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var dto UpdateStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cm, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), dto.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, cm)
}

func (h *Handler) listModeration(c *gin.Context) {
	q := pagination.FromContext(c)
	comments, pag, err := h.svc.ListModeration(q, middleware.CurrentUserID(c), c.Query("status"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, comments, pag)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errUnauthenticated):
		response.UnauthorizedMsg(c, "请先登录后再评论")
	case errors.Is(err, errDisabled):
		response.ForbiddenMsg(c, "全站评论已关闭")
	case errors.Is(err, errContentLength):
		response.UnprocessableEntity(c, fmt.Sprintf("评论内容长度需在 %d 到 %d 个字符之间", h.svc.opts.MinLength, h.svc.opts.MaxLength))
	case errors.Is(err, errPostNotFound):
		response.NotFoundMsg(c, "评论的文章不存在")
	case errors.Is(err, errCommentNotFound):
		response.NotFoundMsg(c, "评论不存在")
	case errors.Is(err, errParentNotFound):
		response.NotFoundMsg(c, "回复的评论不存在")
	case errors.Is(err, errParentMismatch):
		response.UnprocessableEntity(c, "回复的评论不属于该文章")
	case errors.Is(err, errNotAuthor), errors.Is(err, errNotPostAuthor):
		response.Forbidden(c)
	case errors.Is(err, errInvalidStatus):
		response.UnprocessableEntity(c, "无效的评论状态")
	default:
		response.InternalError(c, err)
	}
}
