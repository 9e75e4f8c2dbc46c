package auth

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
	g := rg.Group("/auth")

	g.POST("/signup", h.signup)
	g.POST("/login", h.login)

	a := g.Group("", authMW)
	a.POST("/logout", h.logout)
	a.GET("/me", h.me)
	a.GET("/sessions", h.sessions)
	a.DELETE("/sessions/:id", h.revokeSession)
	a.DELETE("/sessions", h.revokeOtherSessions)
}

func (h *Handler) signup(c *gin.Context) {
	var dto SignupDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, p, err := h.svc.Signup(&dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, gin.H{"user": u, "profile": p})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, u, err := h.svc.Login(dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token, "user": u})
}

func (h *Handler) logout(c *gin.Context) {
	err := h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) me(c *gin.Context) {
	u, p, err := h.svc.Me(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"user": u, "profile": p})
}

func (h *Handler) sessions(c *gin.Context) {
	list, err := h.svc.Sessions(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, list)
}

func (h *Handler) revokeSession(c *gin.Context) {
	err := h.svc.RevokeSession(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) revokeOtherSessions(c *gin.Context) {
	err := h.svc.RevokeOtherSessions(middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errBadCredentials):
		response.UnauthorizedMsg(c, "邮箱或密码错误")
	case errors.Is(err, errEmailTaken):
		response.Conflict(c, "该邮箱已注册")
	case errors.Is(err, errUsernameTaken):
		response.Conflict(c, "该用户名已被占用")
	case errors.Is(err, errSessionGone):
		response.NotFoundMsg(c, "会话不存在")
	default:
		response.InternalError(c, err)
	}
}
