package tag

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/tags")

	g.GET("", h.list)
	g.GET("/:slug", h.getBySlug)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) getBySlug(c *gin.Context) {
	tg, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, tg)
}

func (h *Handler) create(c *gin.Context) {
	var dto TagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tg, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, tg)
}

func (h *Handler) update(c *gin.Context) {
	var dto TagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tg, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, tg)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNotFound):
		response.NotFoundMsg(c, "标签不存在")
	case errors.Is(err, errSlugTaken):
		response.Conflict(c, "已存在同名标签")
	default:
		response.InternalError(c, err)
	}
}
