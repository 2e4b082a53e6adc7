package quicktake

import (
	"errors"

	"github.com/counterclone/indrita-blog-sub000/internal/middleware"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler handles quick-take HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts quick-take routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/quicktakes")

	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("/:id/like", h.like)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.PATCH("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

// list GET /quicktakes
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	takes, pag, err := h.svc.List(q, lq, middleware.IsAdmin(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, takes, pag)
}

// get GET /quicktakes/:id
func (h *Handler) get(c *gin.Context) {
	qt, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if qt == nil || (!qt.IsPublished && !middleware.IsAdmin(c)) {
		response.NotFoundMsg(c, "quick take not found")
		return
	}
	response.OK(c, qt)
}

// like POST /quicktakes/:id/like
func (h *Handler) like(c *gin.Context) {
	qt, err := h.svc.Like(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if qt == nil {
		response.NotFoundMsg(c, "quick take not found")
		return
	}
	response.OK(c, gin.H{"likes": qt.LikeCount})
}

// create POST /quicktakes  [admin]
func (h *Handler) create(c *gin.Context) {
	var dto CreateQuickTakeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	qt, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrInvalidVariant) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, qt)
}

// update PUT /quicktakes/:id  [admin]
func (h *Handler) update(c *gin.Context) {
	var dto UpdateQuickTakeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	qt, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrInvalidVariant) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if qt == nil {
		response.NotFoundMsg(c, "quick take not found")
		return
	}
	response.OK(c, qt)
}

// delete DELETE /quicktakes/:id  [admin]
func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFoundMsg(c, "quick take not found")
		return
	}
	response.NoContent(c)
}
