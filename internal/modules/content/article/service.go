package article

import (
	"bytes"
	"errors"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/database"
	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

// ErrSlugExists is returned when creating or renaming an article to a slug
// that is already taken.
var ErrSlugExists = errors.New("slug already exists")

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

// Service handles article business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns a paginated list of articles, newest publish date first.
func (s *Service) List(q pagination.Query, lq ListQuery) ([]models.ArticleModel, response.Pagination, error) {
	tx := s.db.Model(&models.ArticleModel{}).Order("publish_date DESC, created_at DESC")

	if lq.Category != nil && *lq.Category != "" {
		// Category is stored as a JSON array; match the quoted element.
		tx = tx.Where("category LIKE ?", "%\""+*lq.Category+"\"%")
	}
	if lq.Year != nil {
		tx = tx.Where("YEAR(publish_date) = ?", *lq.Year)
	}

	var articles []models.ArticleModel
	pag, err := pagination.Paginate(tx, q, &articles)
	return articles, pag, err
}

// GetBySlug fetches a single article by slug.
func (s *Service) GetBySlug(articleSlug string) (*models.ArticleModel, error) {
	var a models.ArticleModel
	if err := s.db.Where("slug = ?", articleSlug).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// GetByID fetches a single article by ID.
func (s *Service) GetByID(id string) (*models.ArticleModel, error) {
	var a models.ArticleModel
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new article. The slug is derived from the title when not
// given; a taken slug is a conflict, not auto-disambiguated, so the admin
// notices instead of silently publishing under a different URL.
func (s *Service) Create(dto *CreateArticleDTO) (*models.ArticleModel, error) {
	articleSlug := dto.Slug
	if articleSlug == "" {
		articleSlug = slug.From(dto.Title)
	}

	var count int64
	if err := s.db.Model(&models.ArticleModel{}).Where("slug = ?", articleSlug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	html := dto.HTMLContent
	if html == "" && dto.Markdown != "" {
		rendered, err := renderMarkdown(dto.Markdown)
		if err != nil {
			return nil, err
		}
		html = rendered
	}

	publishDate := time.Now()
	if dto.PublishDate != nil {
		publishDate = *dto.PublishDate
	}

	a := models.ArticleModel{
		Title:       dto.Title,
		Slug:        articleSlug,
		Excerpt:     dto.Excerpt,
		ImageURL:    dto.ImageURL,
		Author:      dto.Author,
		Category:    models.StringArray(dto.Category),
		ReadTime:    dto.ReadTime,
		PublishDate: publishDate,
		HTMLContent: html,
	}
	if err := s.db.Create(&a).Error; err != nil {
		// Two concurrent creates can both pass the count check; the
		// unique index decides.
		if database.IsDuplicateKey(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return &a, nil
}

// Update patches an article by ID.
func (s *Service) Update(id string, dto *UpdateArticleDTO) (*models.ArticleModel, error) {
	a, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Slug != nil && *dto.Slug != a.Slug {
		updates["slug"] = *dto.Slug
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.Author != nil {
		updates["author"] = *dto.Author
	}
	if dto.Category != nil {
		updates["category"] = models.StringArray(*dto.Category)
	}
	if dto.ReadTime != nil {
		updates["read_time"] = *dto.ReadTime
	}
	if dto.PublishDate != nil {
		updates["publish_date"] = *dto.PublishDate
	}
	if dto.HTMLContent != nil {
		updates["html_content"] = *dto.HTMLContent
	} else if dto.Markdown != nil {
		rendered, err := renderMarkdown(*dto.Markdown)
		if err != nil {
			return nil, err
		}
		updates["html_content"] = rendered
	}

	if err := s.db.Model(a).Updates(updates).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return a, nil
}

// Delete hard-deletes an article by ID. Returns (false, nil) when no row matched.
func (s *Service) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.ArticleModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Categories returns the distinct category tags across all articles.
func (s *Service) Categories() ([]string, error) {
	var articles []models.ArticleModel
	if err := s.db.Select("category").Find(&articles).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, a := range articles {
		for _, cat := range a.Category {
			if _, ok := seen[cat]; ok {
				continue
			}
			seen[cat] = struct{}{}
			out = append(out, cat)
		}
	}
	return out, nil
}

func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
