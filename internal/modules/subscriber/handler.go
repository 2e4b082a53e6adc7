package subscriber

import (
	"errors"
	"fmt"

	"github.com/counterclone/indrita-blog-sub000/internal/modules/notify"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler handles subscriber HTTP requests.
type Handler struct {
	svc       *Service
	testSvc   *TestListService
	notifySvc *notify.Service
}

func NewHandler(svc *Service, testSvc *TestListService, notifySvc *notify.Service) *Handler {
	return &Handler{svc: svc, testSvc: testSvc, notifySvc: notifySvc}
}

// RegisterRoutes mounts subscriber routes onto the given router group.
// Subscribe and unsubscribe are public; unsubscribe also answers GET so the
// link embedded in every email works from a browser.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/subscribers")

	g.POST("/subscribe", h.subscribe)
	g.POST("/unsubscribe", h.unsubscribe)
	g.GET("/unsubscribe", h.unsubscribe)

	a := g.Group("", authMW)
	a.GET("", h.list)
	a.POST("/bulk-import", h.bulkImport)
	a.PATCH("/:id/toggle", h.toggle)
	a.DELETE("/:id", h.delete)

	a.GET("/test", h.listTest)
	a.POST("/test", h.addTest)
	a.DELETE("/test/:id", h.deleteTest)
	a.POST("/test-send", h.testSend)
}

type emailDTO struct {
	Email string `json:"email" form:"email" binding:"required"`
}

// subscribe POST /subscribers/subscribe
func (h *Handler) subscribe(c *gin.Context) {
	var dto emailDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	outcome, err := h.svc.Subscribe(dto.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	switch outcome {
	case OutcomeInvalid:
		response.BadRequest(c, "invalid email address")
	case OutcomeAdded:
		response.Created(c, gin.H{"outcome": outcome, "message": "subscribed"})
	case OutcomeReactivated:
		response.OK(c, gin.H{"outcome": outcome, "message": "welcome back"})
	default:
		response.OK(c, gin.H{"outcome": outcome, "message": "already subscribed"})
	}
}

// unsubscribe POST|GET /subscribers/unsubscribe
func (h *Handler) unsubscribe(c *gin.Context) {
	var dto emailDTO
	if c.Request.Method == "GET" {
		dto.Email = c.Query("email")
		if dto.Email == "" {
			response.BadRequest(c, "email is required")
			return
		}
	} else if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	outcome, err := h.svc.Unsubscribe(dto.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	switch outcome {
	case OutcomeInvalid:
		response.BadRequest(c, "invalid email address")
	case OutcomeNotFound:
		response.NotFoundMsg(c, "subscriber not found")
	case OutcomeAlreadyUnsubscribed:
		response.OK(c, gin.H{"outcome": outcome, "message": "already unsubscribed"})
	default:
		response.OK(c, gin.H{"outcome": outcome, "message": "unsubscribed"})
	}
}

// list GET /subscribers  [admin]
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	subs, pag, err := h.svc.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, subs, pag)
}

type bulkImportDTO struct {
	Emails []string `json:"emails" binding:"required"`
}

// bulkImport POST /subscribers/bulk-import  [admin]
func (h *Handler) bulkImport(c *gin.Context) {
	var dto bulkImportDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if len(dto.Emails) == 0 {
		response.BadRequest(c, "emails must not be empty")
		return
	}

	report, err := h.svc.BulkImport(dto.Emails)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, report)
}

// toggle PATCH /subscribers/:id/toggle  [admin]
func (h *Handler) toggle(c *gin.Context) {
	sub, err := h.svc.Toggle(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sub == nil {
		response.NotFoundMsg(c, "subscriber not found")
		return
	}
	response.OK(c, sub)
}

// delete DELETE /subscribers/:id  [admin]
func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFoundMsg(c, "subscriber not found")
		return
	}
	response.NoContent(c)
}

// listTest GET /subscribers/test  [admin]
func (h *Handler) listTest(c *gin.Context) {
	subs, err := h.testSvc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, subs)
}

// addTest POST /subscribers/test  [admin]
func (h *Handler) addTest(c *gin.Context) {
	var dto emailDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, created, err := h.testSvc.Add(dto.Email)
	if err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if !created {
		response.OK(c, sub)
		return
	}
	response.Created(c, sub)
}

// deleteTest DELETE /subscribers/test/:id  [admin]
func (h *Handler) deleteTest(c *gin.Context) {
	deleted, err := h.testSvc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFoundMsg(c, "test subscriber not found")
		return
	}
	response.NoContent(c)
}

type testSendDTO struct {
	Title      string `json:"title" binding:"required"`
	Excerpt    string `json:"excerpt"`
	ArticleURL string `json:"articleUrl" binding:"required"`
}

// testSend POST /subscribers/test-send  [admin]
// Sends the new-article email to the test list only.
func (h *Handler) testSend(c *gin.Context) {
	var dto testSendDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	recipients, err := h.testSvc.Emails()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if len(recipients) == 0 {
		response.BadRequest(c, "test subscriber list is empty")
		return
	}

	sent, total, err := h.notifySvc.SendNewArticle(dto.Title, dto.Excerpt, dto.ArticleURL, recipients)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": fmt.Sprintf("%d of %d sent", sent, total)})
}
