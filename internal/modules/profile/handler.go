package profile

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/profiles/:username", h.getByUsername)

	a := rg.Group("/profile", authMW)
	a.GET("", h.me)
	a.PUT("", h.update)
}

func (h *Handler) getByUsername(c *gin.Context) {
	p, err := h.svc.GetByUsername(c.Param("username"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) me(c *gin.Context) {
	p, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.svc.Update(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNotFound):
		response.NotFoundMsg(c, "用户不存在")
	case errors.Is(err, errUsernameTaken):
		response.Conflict(c, "该用户名已被占用")
	default:
		response.InternalError(c, err)
	}
}
