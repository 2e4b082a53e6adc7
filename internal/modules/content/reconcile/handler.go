package reconcile

import (
	"errors"

	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes the reconciler as admin ops endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts reconciliation routes. Everything here is admin-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/reconcile", authMW)

	g.POST("/repair", h.repairAll)
	g.POST("/articles/:id", h.ensureOne)
}

// repairAll POST /reconcile/repair  [admin]
func (h *Handler) repairAll(c *gin.Context) {
	report, err := h.svc.RepairAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, report)
}

// ensureOne POST /reconcile/articles/:id  [admin]
func (h *Handler) ensureOne(c *gin.Context) {
	content, err := h.svc.EnsureContentExists(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, content)
}
