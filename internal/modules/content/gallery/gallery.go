package gallery

import (
	"errors"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateGalleryDTO struct {
	ImageURL string     `json:"imageUrl" binding:"required"`
	Title    string     `json:"title"`
	Date     *time.Time `json:"date"`
}

type UpdateGalleryDTO struct {
	ImageURL *string    `json:"imageUrl"`
	Title    *string    `json:"title"`
	Date     *time.Time `json:"date"`
}

// Service handles gallery CRUD.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(q pagination.Query) ([]models.GalleryModel, response.Pagination, error) {
	tx := s.db.Model(&models.GalleryModel{}).Order("date DESC")
	var items []models.GalleryModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) Create(dto *CreateGalleryDTO) (*models.GalleryModel, error) {
	item := &models.GalleryModel{
		ImageURL: dto.ImageURL,
		Title:    dto.Title,
		Date:     time.Now(),
	}
	if dto.Date != nil {
		item.Date = *dto.Date
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Update(id string, dto *UpdateGalleryDTO) (*models.GalleryModel, error) {
	var item models.GalleryModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.ImageURL != nil {
		item.ImageURL = *dto.ImageURL
		updates["image_url"] = *dto.ImageURL
	}
	if dto.Title != nil {
		item.Title = *dto.Title
		updates["title"] = *dto.Title
	}
	if dto.Date != nil {
		item.Date = *dto.Date
		updates["date"] = *dto.Date
	}
	if len(updates) == 0 {
		return &item, nil
	}
	if err := s.db.Model(&models.GalleryModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.GalleryModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Handler handles gallery HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/gallery")

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
	var dto CreateGalleryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateGalleryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFoundMsg(c, "gallery item not found")
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
		response.NotFoundMsg(c, "gallery item not found")
		return
	}
	response.NoContent(c)
}
