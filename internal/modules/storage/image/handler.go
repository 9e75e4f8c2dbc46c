package image

import (
	"errors"
	"io"

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
	g := rg.Group("/images", authMW)

	g.POST("/upload", h.upload)
	g.GET("", h.gallery)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > h.svc.maxBytes {
		h.writeError(c, errTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, h.svc.maxBytes+1))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	img, err := h.svc.Upload(c.Request.Context(),
		middleware.CurrentUserID(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		payload)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, img)
}

func (h *Handler) gallery(c *gin.Context) {
	q := pagination.FromContext(c)
	images, pag, err := h.svc.Gallery(q, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, images, pag)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNotImage):
		response.UnprocessableEntity(c, "只支持上传图片文件")
	case errors.Is(err, errTooLarge):
		response.UnprocessableEntity(c, "图片大小超出限制")
	case errors.Is(err, errNotFound):
		response.NotFoundMsg(c, "图片不存在")
	case errors.Is(err, errNotOwner):
		response.Forbidden(c)
	default:
		response.InternalError(c, err)
	}
}
