package quicktake

import (
	"github.com/counterclone/indrita-blog-sub000/internal/models"
)

// CreateQuickTakeDTO accepts a new quick take. Variant fields are validated
// against Type in the service.
type CreateQuickTakeDTO struct {
	Type          string   `json:"type" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	ChartTitle    string   `json:"chartTitle"`
	ChartDesc     string   `json:"chartDescription"`
	ImageURL      string   `json:"imageUrl"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
	Trending      bool     `json:"trending"`
	IsPublished   *bool    `json:"isPublished"`
	CommentsCount int      `json:"comments"`
}

// UpdateQuickTakeDTO patches an existing quick take. Nil fields are left
// untouched.
type UpdateQuickTakeDTO struct {
	Type          *string   `json:"type"`
	Content       *string   `json:"content"`
	ChartTitle    *string   `json:"chartTitle"`
	ChartDesc     *string   `json:"chartDescription"`
	ImageURL      *string   `json:"imageUrl"`
	Author        *string   `json:"author"`
	Tags          *[]string `json:"tags"`
	Trending      *bool     `json:"trending"`
	IsPublished   *bool     `json:"isPublished"`
	CommentsCount *int      `json:"comments"`
}

// ListQuery filters the quick-take feed.
type ListQuery struct {
	Type     string `form:"type"`
	Trending bool   `form:"trending"`
}

func applyCreate(dto *CreateQuickTakeDTO) *models.QuickTakeModel {
	qt := &models.QuickTakeModel{
		Type:          models.QuickTakeType(dto.Type),
		Content:       dto.Content,
		ChartTitle:    dto.ChartTitle,
		ChartDesc:     dto.ChartDesc,
		ImageURL:      dto.ImageURL,
		Author:        dto.Author,
		Tags:          models.StringArray(dto.Tags),
		Trending:      dto.Trending,
		CommentsCount: dto.CommentsCount,
		IsPublished:   true,
	}
	if dto.IsPublished != nil {
		qt.IsPublished = *dto.IsPublished
	}
	return qt
}
