package post

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/models"
	"github.com/inkwell-blog/core/internal/modules/content/comment"
	"github.com/inkwell-blog/core/internal/pkg/pagination"
	"github.com/inkwell-blog/core/internal/pkg/response"
)

type Handler struct {
	svc      *Service
	comments *comment.Service
}

func NewHandler(svc *Service, comments *comment.Service) *Handler {
	return &Handler{svc: svc, comments: comments}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/posts")
	g.GET("", h.list)
	g.GET("/:slug", h.getBySlug)

	a := rg.Group("/manage/posts", authMW)
	a.GET("", h.listMine)
	a.GET("/:id", h.getByID)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	filter := ListFilter{
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Author:       c.Query("author"),
		Search:       c.Query("search"),
	}

	posts, pag, err := h.svc.List(q, filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items, err := h.withCommentCounts(posts)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) withCommentCounts(posts []models.PostModel) ([]ListItem, error) {
	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	counts, err := h.comments.CountApprovedBatch(ids)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, len(posts))
	for i := range posts {
		items[i] = ListItem{PostModel: posts[i], CommentCount: counts[posts[i].ID]}
	}
	return items, nil
}

func (h *Handler) getBySlug(c *gin.Context) {
	view, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	n, err := h.comments.CountApproved(view.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	view.CommentCount = n
	response.OK(c, view)
}

func (h *Handler) listMine(c *gin.Context) {
	q := pagination.FromContext(c)
	posts, pag, err := h.svc.ListMine(q, middleware.CurrentUserID(c), c.Query("status"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, pag)
}

func (h *Handler) getByID(c *gin.Context) {
	post, err := h.svc.GetByID(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, post)
}

func (h *Handler) create(c *gin.Context) {
	var dto PostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, post)
}

func (h *Handler) update(c *gin.Context) {
	var dto PostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.svc.Update(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, post)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errPostNotFound):
		response.NotFoundMsg(c, "文章不存在")
	case errors.Is(err, errNotAuthor):
		response.Forbidden(c)
	case errors.Is(err, errCategoryNotFound):
		response.UnprocessableEntity(c, "选择的分类不存在")
	case errors.Is(err, errTagNotFound):
		response.UnprocessableEntity(c, "选择的标签不存在")
	case errors.Is(err, errInvalidStatus):
		response.UnprocessableEntity(c, "无效的文章状态")
	default:
		response.InternalError(c, err)
	}
}
