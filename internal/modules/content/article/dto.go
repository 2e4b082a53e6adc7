package article

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
)

// CategoryField accepts either a legacy scalar string or an array of strings
// in request bodies and normalizes to a slice at the boundary.
type CategoryField []string

func (f *CategoryField) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	single = strings.TrimSpace(single)
	if single == "" {
		*f = []string{}
		return nil
	}
	*f = []string{single}
	return nil
}

// CreateArticleDTO is the request body for creating an article. Markdown may
// be submitted instead of htmlContent; it is rendered at write time.
type CreateArticleDTO struct {
	Title       string        `json:"title"       binding:"required"`
	Slug        string        `json:"slug"`
	Excerpt     string        `json:"excerpt"`
	ImageURL    string        `json:"imageUrl"`
	Author      string        `json:"author"`
	Category    CategoryField `json:"category"`
	ReadTime    string        `json:"readTime"`
	PublishDate *time.Time    `json:"publishDate"`
	HTMLContent string        `json:"htmlContent"`
	Markdown    string        `json:"markdown"`
}

// UpdateArticleDTO is the request body for updating an article (all fields optional).
type UpdateArticleDTO struct {
	Title       *string        `json:"title"`
	Slug        *string        `json:"slug"`
	Excerpt     *string        `json:"excerpt"`
	ImageURL    *string        `json:"imageUrl"`
	Author      *string        `json:"author"`
	Category    *CategoryField `json:"category"`
	ReadTime    *string        `json:"readTime"`
	PublishDate *time.Time     `json:"publishDate"`
	HTMLContent *string        `json:"htmlContent"`
	Markdown    *string        `json:"markdown"`
}

// ListQuery holds query params for listing articles.
type ListQuery struct {
	Category *string `form:"category"`
	Year     *int    `form:"year"`
}

// articleResponse is the API response shape for an article.
type articleResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	ImageURL    string    `json:"imageUrl"`
	Author      string    `json:"author"`
	Category    []string  `json:"category"`
	ReadTime    string    `json:"readTime"`
	PublishDate time.Time `json:"publishDate"`
	HTMLContent string    `json:"htmlContent,omitempty"`
	Created     time.Time `json:"createdAt"`
	Modified    time.Time `json:"updatedAt"`
}

func toResponse(a *models.ArticleModel, withBody bool) articleResponse {
	category := []string(a.Category)
	if category == nil {
		category = []string{}
	}
	resp := articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		ImageURL:    a.ImageURL,
		Author:      a.Author,
		Category:    category,
		ReadTime:    a.ReadTime,
		PublishDate: a.PublishDate,
		Created:     a.CreatedAt,
		Modified:    a.UpdatedAt,
	}
	if withBody {
		resp.HTMLContent = a.HTMLContent
	}
	return resp
}
