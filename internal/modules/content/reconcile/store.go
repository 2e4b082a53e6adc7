package reconcile

import (
	"errors"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"gorm.io/gorm"
)

// Store is the persistence surface of the reconciler. The GORM implementation
// is the real one; tests use an in-memory fake.
type Store interface {
	ArticleByID(id string) (*models.ArticleModel, error) // (nil, nil) when absent
	Articles() ([]models.ArticleModel, error)
	ContentByArticleID(articleID string) (*models.ArticleContentModel, error)
	ContentBySlug(slug string) (*models.ArticleContentModel, error)
	CreateContent(content *models.ArticleContentModel) error
	RelinkContent(contentID, articleID string) error
}

type gormStore struct{ db *gorm.DB }

// NewStore returns the GORM-backed reconciler store.
func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) ArticleByID(id string) (*models.ArticleModel, error) {
	var a models.ArticleModel
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) Articles() ([]models.ArticleModel, error) {
	var articles []models.ArticleModel
	if err := s.db.Order("created_at ASC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *gormStore) ContentByArticleID(articleID string) (*models.ArticleContentModel, error) {
	var c models.ArticleContentModel
	if err := s.db.Where("article_id = ?", articleID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) ContentBySlug(slug string) (*models.ArticleContentModel, error) {
	var c models.ArticleContentModel
	if err := s.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) CreateContent(content *models.ArticleContentModel) error {
	return s.db.Create(content).Error
}

func (s *gormStore) RelinkContent(contentID, articleID string) error {
	return s.db.Model(&models.ArticleContentModel{}).
		Where("id = ?", contentID).
		Update("article_id", articleID).Error
}
