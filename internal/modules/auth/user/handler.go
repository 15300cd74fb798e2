package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/postform/core/internal/middleware"
	"github.com/postform/core/internal/models"
	"github.com/postform/core/internal/modules/auth/gate"
	"github.com/postform/core/internal/pkg/response"
	sessionpkg "github.com/postform/core/internal/pkg/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/user")

	g.POST("/login", h.login)
	g.POST("/register", h.register)

	a := g.Group("", authMW)
	a.GET("", h.currentUser)
	a.POST("/logout", h.logout)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, u, err := h.svc.Login(dto.Username, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, errUserNotFound) || errors.Is(err, errWrongPassword) {
			response.ForbiddenMsg(c, "Invalid username or password")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, loginResponse{Token: token, User: toResponse(u)})
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			response.BadRequest(c, "Username already taken")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(u))
}

func (h *Handler) currentUser(c *gin.Context) {
	u, err := h.svc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(u))
}

func (h *Handler) logout(c *gin.Context) {
	sessionID := middleware.CurrentSessionID(c)
	if sessionID != "" {
		_ = sessionpkg.Revoke(h.svc.db, middleware.CurrentUserID(c), sessionID)
	}
	response.NoContent(c)
}

func toResponse(u *models.UserModel) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:            u.ID,
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		Mail:          u.Mail,
		Roles:         u.Roles,
		CanSubmit:     gate.CanSubmit(u),
		LastLoginTime: u.LastLoginTime,
		LastLoginIP:   u.LastLoginIP,
	}
}
