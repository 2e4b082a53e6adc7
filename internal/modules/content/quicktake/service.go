package quicktake

import (
	"errors"
	"fmt"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrInvalidVariant reports a type/field mismatch at write time.
var ErrInvalidVariant = errors.New("invalid quick take")

var validTypes = map[models.QuickTakeType]bool{
	models.QuickTakeText:  true,
	models.QuickTakeChart: true,
	models.QuickTakeImage: true,
	models.QuickTakeQuote: true,
}

// validateVariant enforces the per-type required fields.
func validateVariant(qt *models.QuickTakeModel) error {
	if !validTypes[qt.Type] {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidVariant, qt.Type)
	}
	switch qt.Type {
	case models.QuickTakeQuote:
		if qt.Author == "" {
			return fmt.Errorf("%w: quote requires an author", ErrInvalidVariant)
		}
	case models.QuickTakeChart:
		if qt.ChartTitle == "" {
			return fmt.Errorf("%w: chart requires a chart title", ErrInvalidVariant)
		}
	case models.QuickTakeImage:
		if qt.ImageURL == "" {
			return fmt.Errorf("%w: image requires an image url", ErrInvalidVariant)
		}
	}
	return nil
}

// Service handles quick-take business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns the feed, newest first. Unpublished takes are admin-only.
func (s *Service) List(q pagination.Query, lq ListQuery, includeUnpublished bool) ([]models.QuickTakeModel, response.Pagination, error) {
	tx := s.db.Model(&models.QuickTakeModel{}).Order("created_at DESC")

	if !includeUnpublished {
		tx = tx.Where("is_published = ?", true)
	}
	if lq.Type != "" {
		tx = tx.Where("type = ?", lq.Type)
	}
	if lq.Trending {
		tx = tx.Where("trending = ?", true)
	}

	var takes []models.QuickTakeModel
	pag, err := pagination.Paginate(tx, q, &takes)
	return takes, pag, err
}

func (s *Service) GetByID(id string) (*models.QuickTakeModel, error) {
	var qt models.QuickTakeModel
	if err := s.db.First(&qt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &qt, nil
}

func (s *Service) Create(dto *CreateQuickTakeDTO) (*models.QuickTakeModel, error) {
	qt := applyCreate(dto)
	if err := validateVariant(qt); err != nil {
		return nil, err
	}
	if err := s.db.Create(qt).Error; err != nil {
		return nil, err
	}
	return qt, nil
}

func (s *Service) Update(id string, dto *UpdateQuickTakeDTO) (*models.QuickTakeModel, error) {
	existing, err := s.GetByID(id)
	if err != nil || existing == nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Type != nil {
		existing.Type = models.QuickTakeType(*dto.Type)
		updates["type"] = *dto.Type
	}
	if dto.Content != nil {
		existing.Content = *dto.Content
		updates["content"] = *dto.Content
	}
	if dto.ChartTitle != nil {
		existing.ChartTitle = *dto.ChartTitle
		updates["chart_title"] = *dto.ChartTitle
	}
	if dto.ChartDesc != nil {
		existing.ChartDesc = *dto.ChartDesc
		updates["chart_desc"] = *dto.ChartDesc
	}
	if dto.ImageURL != nil {
		existing.ImageURL = *dto.ImageURL
		updates["image_url"] = *dto.ImageURL
	}
	if dto.Author != nil {
		existing.Author = *dto.Author
		updates["author"] = *dto.Author
	}
	if dto.Tags != nil {
		existing.Tags = models.StringArray(*dto.Tags)
		updates["tags"] = existing.Tags
	}
	if dto.Trending != nil {
		existing.Trending = *dto.Trending
		updates["trending"] = *dto.Trending
	}
	if dto.IsPublished != nil {
		existing.IsPublished = *dto.IsPublished
		updates["is_published"] = *dto.IsPublished
	}
	if dto.CommentsCount != nil {
		existing.CommentsCount = *dto.CommentsCount
		updates["comments_count"] = *dto.CommentsCount
	}

	// The patched record must still be a coherent variant.
	if err := validateVariant(existing); err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return existing, nil
	}
	if err := s.db.Model(&models.QuickTakeModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Like atomically increments the like counter and returns the new count.
func (s *Service) Like(id string) (*models.QuickTakeModel, error) {
	result := s.db.Model(&models.QuickTakeModel{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.QuickTakeModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
