package article

import (
	"errors"

	"github.com/counterclone/indrita-blog-sub000/internal/modules/notify"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler handles article HTTP requests.
type Handler struct {
	svc       *Service
	notifySvc *notify.Service
}

func NewHandler(svc *Service, notifySvc *notify.Service) *Handler {
	return &Handler{svc: svc, notifySvc: notifySvc}
}

// RegisterRoutes mounts article routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/articles")

	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/:slug", h.getBySlug)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:slug", h.update)
	a.PATCH("/:slug", h.update) // legacy admin panel uses PATCH
	a.DELETE("/:slug", h.delete)
}

// list GET /articles
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	articles, pag, err := h.svc.List(q, lq)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]articleResponse, len(articles))
	for i, a := range articles {
		items[i] = toResponse(&a, false)
	}
	response.Paged(c, items, pag)
}

// categories GET /articles/categories
func (h *Handler) categories(c *gin.Context) {
	cats, err := h.svc.Categories()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cats)
}

// getBySlug GET /articles/:slug
func (h *Handler) getBySlug(c *gin.Context) {
	a, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if a == nil {
		response.NotFoundMsg(c, "article not found")
		return
	}
	response.OK(c, toResponse(a, true))
}

// create POST /articles  [admin]
func (h *Handler) create(c *gin.Context) {
	var dto CreateArticleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	// Notification dispatch is best-effort; the 201 never waits on it.
	if h.notifySvc != nil {
		go h.notifySvc.OnArticlePublish(a.Title, a.Excerpt, a.Slug)
	}

	response.Created(c, toResponse(a, true))
}

// update PUT /articles/:slug  [admin]
// The admin panel addresses articles by slug; resolve to the row first.
func (h *Handler) update(c *gin.Context) {
	existing, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if existing == nil {
		response.NotFoundMsg(c, "article not found")
		return
	}

	var dto UpdateArticleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.svc.Update(existing.ID, &dto)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if a == nil {
		response.NotFoundMsg(c, "article not found")
		return
	}
	response.OK(c, toResponse(a, true))
}

// delete DELETE /articles/:slug  [admin]
func (h *Handler) delete(c *gin.Context) {
	existing, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if existing == nil {
		response.NotFoundMsg(c, "article not found")
		return
	}
	if _, err := h.svc.Delete(existing.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
