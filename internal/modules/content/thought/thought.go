package thought

import (
	"bytes"
	"errors"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gorm.io/gorm"
)

var markdownEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))

// CreateThoughtDTO accepts either ready-made embed HTML or markdown source.
type CreateThoughtDTO struct {
	Embed    string     `json:"embed"`
	Markdown string     `json:"markdown"`
	Date     *time.Time `json:"date"`
}

// UpdateThoughtDTO patches a thought; nil fields are left untouched.
type UpdateThoughtDTO struct {
	Embed    *string    `json:"embed"`
	Markdown *string    `json:"markdown"`
	Date     *time.Time `json:"date"`
}

// Service handles thought CRUD.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(q pagination.Query) ([]models.ThoughtModel, response.Pagination, error) {
	tx := s.db.Model(&models.ThoughtModel{}).Order("date DESC")
	var items []models.ThoughtModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// resolveEmbed picks the embed HTML: given embed wins, otherwise markdown is
// rendered. Both empty is a validation error.
func resolveEmbed(embed, markdown string) (string, error) {
	if embed != "" {
		return embed, nil
	}
	if markdown == "" {
		return "", errInvalidThought
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Service) Create(dto *CreateThoughtDTO) (*models.ThoughtModel, error) {
	embed, err := resolveEmbed(dto.Embed, dto.Markdown)
	if err != nil {
		return nil, err
	}

	item := &models.ThoughtModel{Embed: embed, Date: time.Now()}
	if dto.Date != nil {
		item.Date = *dto.Date
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Update patches a thought by ID. Returns (nil, nil) when the ID is unknown.
func (s *Service) Update(id string, dto *UpdateThoughtDTO) (*models.ThoughtModel, error) {
	var item models.ThoughtModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Embed != nil || dto.Markdown != nil {
		embed := ""
		if dto.Embed != nil {
			embed = *dto.Embed
		}
		markdown := ""
		if dto.Markdown != nil {
			markdown = *dto.Markdown
		}
		resolved, err := resolveEmbed(embed, markdown)
		if err != nil {
			return nil, err
		}
		updates["embed"] = resolved
	}
	if dto.Date != nil {
		updates["date"] = *dto.Date
	}

	if len(updates) == 0 {
		return &item, nil
	}
	if err := s.db.Model(&item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.ThoughtModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var errInvalidThought = errors.New("either embed or markdown is required")

// Handler handles thought HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/thoughts")

	g.GET("", h.list)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.List(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateThoughtDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, errInvalidThought) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateThoughtDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, errInvalidThought) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFoundMsg(c, "thought not found")
		return
	}
	response.OK(c, item)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFoundMsg(c, "thought not found")
		return
	}
	response.NoContent(c)
}
