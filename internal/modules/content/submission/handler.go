package submission

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postform/core/internal/middleware"
	"github.com/postform/core/internal/models"
	"github.com/postform/core/internal/modules/auth/gate"
	"github.com/postform/core/internal/modules/content/kinds"
	"github.com/postform/core/internal/pkg/response"
)

// UserLookup resolves the authenticated user record.
type UserLookup interface {
	GetByID(id string) (*models.UserModel, error)
}

type Handler struct {
	svc   *Service
	users UserLookup
}

func NewHandler(svc *Service, users UserLookup) *Handler {
	return &Handler{svc: svc, users: users}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/submissions")

	g.GET("/kinds", h.listKinds)

	a := g.Group("", authMW)
	a.POST("", h.create)
}

// listKinds returns the content kinds selectable in the form dropdown.
func (h *Handler) listKinds(c *gin.Context) {
	response.OK(c, kinds.ListPublic())
}

// create runs the submission workflow. Workflow outcomes, including
// validation and partial failures, are always serialized as a 200 Result so
// the form script renders them uniformly.
func (h *Handler) create(c *gin.Context) {
	author, err := h.users.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if author == nil {
		response.Unauthorized(c)
		return
	}
	if !gate.CanSubmit(author) {
		response.ForbiddenMsg(c, "You are not allowed to submit content")
		return
	}

	input := Input{
		Title:   c.PostForm("post_title"),
		Kind:    c.PostForm("post_type"),
		Body:    c.PostForm("description"),
		Excerpt: c.PostForm("excerpt"),
	}
	if fileHeader, err := c.FormFile("featured_image"); err == nil {
		input.Image = fileHeader
	}

	result := h.svc.Handle(c.Request.Context(), input, author)
	c.JSON(http.StatusOK, result)
}
