package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/slug"
	"go.uber.org/zap"
)

// ErrArticleNotFound is returned when reconciliation is requested for an
// article id that does not exist.
var ErrArticleNotFound = errors.New("article not found")

// Report summarizes one repair run.
type Report struct {
	Linked  int `json:"linked"`  // content already attached by article id
	Fixed   int `json:"fixed"`   // content found by slug, article id rewritten
	Created int `json:"created"` // content synthesized
	Errors  int `json:"errors"`  // per-article failures, see logs
}

// Service keeps the article↔content link intact. Historical partial writes
// left articles without a content row, or content rows carrying a stale
// article id that only the slug still ties back.
type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// outcome of repairing a single article.
type outcome int

const (
	outcomeLinked outcome = iota
	outcomeFixed
	outcomeCreated
)

// EnsureContentExists returns the content row for an article, repairing or
// creating it as needed. Returns ErrArticleNotFound when the article id is
// unknown.
func (s *Service) EnsureContentExists(articleID string) (*models.ArticleContentModel, error) {
	article, err := s.store.ArticleByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	content, _, err := s.reconcile(article)
	return content, err
}

// RepairAll walks every article and guarantees each has a linked content row.
// Running it twice changes nothing the second time. Per-article failures are
// logged and counted; the walk continues.
func (s *Service) RepairAll() (*Report, error) {
	articles, err := s.store.Articles()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for i := range articles {
		article := &articles[i]
		_, result, err := s.reconcile(article)
		if err != nil {
			report.Errors++
			s.log.Warn("content repair failed",
				zap.String("articleId", article.ID),
				zap.String("slug", article.Slug),
				zap.Error(err))
			continue
		}
		switch result {
		case outcomeLinked:
			report.Linked++
		case outcomeFixed:
			report.Fixed++
		case outcomeCreated:
			report.Created++
		}
	}

	s.log.Info("content repair finished",
		zap.Int("linked", report.Linked),
		zap.Int("fixed", report.Fixed),
		zap.Int("created", report.Created),
		zap.Int("errors", report.Errors))
	return report, nil
}

func (s *Service) reconcile(article *models.ArticleModel) (*models.ArticleContentModel, outcome, error) {
	content, err := s.store.ContentByArticleID(article.ID)
	if err != nil {
		return nil, 0, err
	}
	if content != nil {
		return content, outcomeLinked, nil
	}

	contentSlug := s.deriveSlug(article)

	// A row may exist under the expected slug with a dead article id. Adopt
	// it rather than creating a duplicate, but never steal a row that a
	// live article still owns.
	existing, err := s.store.ContentBySlug(contentSlug)
	if err != nil {
		return nil, 0, err
	}
	if existing != nil {
		orphaned, err := s.isOrphaned(existing)
		if err != nil {
			return nil, 0, err
		}
		if orphaned {
			if err := s.store.RelinkContent(existing.ID, article.ID); err != nil {
				return nil, 0, err
			}
			existing.ArticleID = article.ID
			return existing, outcomeFixed, nil
		}
		// Live collision, disambiguate.
		contentSlug = fmt.Sprintf("%s-%d", contentSlug, s.now().UnixMilli())
	}

	created := &models.ArticleContentModel{
		ArticleID:   article.ID,
		Slug:        contentSlug,
		HTMLContent: article.HTMLContent,
	}
	if err := s.store.CreateContent(created); err != nil {
		return nil, 0, err
	}
	return created, outcomeCreated, nil
}

func (s *Service) isOrphaned(content *models.ArticleContentModel) (bool, error) {
	if content.ArticleID == "" {
		return true, nil
	}
	owner, err := s.store.ArticleByID(content.ArticleID)
	if err != nil {
		return false, err
	}
	return owner == nil, nil
}

// deriveSlug picks the content slug: the article's own slug, a slug built
// from the title, or a synthetic fallback when both are empty.
func (s *Service) deriveSlug(article *models.ArticleModel) string {
	if article.Slug != "" {
		return article.Slug
	}
	if derived := slug.From(article.Title); derived != "" {
		return derived
	}
	return "article-" + article.ID
}
