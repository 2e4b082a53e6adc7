package legacyimport

import (
	"archive/zip"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/modules/content/reconcile"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoCollections is returned when the archive contains no recognized
// .bson dumps.
var ErrNoCollections = errors.New("no recognized collections in archive")

// importOrder fixes the processing sequence. The split subscriber dumps
// (active/unsubscribed) go before the unified collection so a unified row
// wins any conflict.
var importOrder = []string{
	"articles",
	"articlecontents",
	"quicktakes",
	"galleries",
	"thoughts",
	"testsubscribers",
	"activesubscribers",
	"unsubscribedusers",
	"subscribers",
}

// Report gives per-collection imported counts plus the reconciliation
// summary that ran afterwards.
type Report struct {
	Collections map[string]int    `json:"collections"`
	Skipped     int               `json:"skipped"`
	Reconcile   *reconcile.Report `json:"reconcile"`
}

// Service imports mongodump archives from the legacy deployment.
type Service struct {
	db         *gorm.DB
	reconciler *reconcile.Service
	log        *zap.Logger
}

func NewService(db *gorm.DB, reconciler *reconcile.Service, log *zap.Logger) *Service {
	return &Service{db: db, reconciler: reconciler, log: log}
}

// ImportZip ingests every recognized .bson file in the archive, upserting by
// natural key, then repairs the article↔content links.
func (s *Service) ImportZip(zr *zip.Reader) (*Report, error) {
	payloads := map[string][]byte{}
	for _, f := range zr.File {
		name := strings.ToLower(path.Base(f.Name))
		if !strings.HasSuffix(name, ".bson") {
			continue
		}
		collection := strings.TrimSuffix(name, ".bson")

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		payloads[collection] = data
	}

	report := &Report{Collections: map[string]int{}}
	recognized := false
	for _, collection := range importOrder {
		payload, ok := payloads[collection]
		if !ok {
			continue
		}
		recognized = true

		docs, err := decodeBSONDocs(payload)
		if err != nil {
			s.log.Warn("legacy import decode failed",
				zap.String("collection", collection), zap.Error(err))
			report.Skipped++
			continue
		}

		count := 0
		for _, doc := range docs {
			imported, err := s.importDoc(collection, doc)
			if err != nil {
				s.log.Warn("legacy import row failed",
					zap.String("collection", collection), zap.Error(err))
				report.Skipped++
				continue
			}
			if imported {
				count++
			} else {
				report.Skipped++
			}
		}
		report.Collections[collection] = count
	}

	if !recognized {
		return nil, ErrNoCollections
	}

	reconcileReport, err := s.reconciler.RepairAll()
	if err != nil {
		return nil, err
	}
	report.Reconcile = reconcileReport
	return report, nil
}

func (s *Service) importDoc(collection string, doc map[string]interface{}) (bool, error) {
	switch collection {
	case "articles":
		return s.upsertArticle(mapArticle(doc))
	case "articlecontents":
		return s.upsertContent(mapArticleContent(doc))
	case "subscribers":
		return s.upsertSubscriber(mapSubscriber(doc, true), true)
	case "activesubscribers":
		return s.upsertSubscriber(mapSubscriber(doc, true), false)
	case "unsubscribedusers":
		return s.upsertSubscriber(mapSubscriber(doc, false), false)
	case "testsubscribers":
		return s.upsertTestSubscriber(mapTestSubscriber(doc))
	case "quicktakes":
		qt := mapQuickTake(doc)
		return s.upsertByID(qt.ID, qt, &models.QuickTakeModel{})
	case "galleries":
		g := mapGallery(doc)
		return s.upsertByID(g.ID, g, &models.GalleryModel{})
	case "thoughts":
		th := mapThought(doc)
		return s.upsertByID(th.ID, th, &models.ThoughtModel{})
	}
	return false, nil
}

func (s *Service) upsertArticle(a *models.ArticleModel) (bool, error) {
	if a.Slug == "" {
		a.Slug = slug.From(a.Title)
	}
	if a.Slug == "" {
		return false, nil
	}

	var existing models.ArticleModel
	err := s.db.Where("slug = ?", a.Slug).First(&existing).Error
	if err == nil {
		return true, s.db.Model(&existing).Updates(map[string]interface{}{
			"title":        a.Title,
			"excerpt":      a.Excerpt,
			"image_url":    a.ImageURL,
			"author":       a.Author,
			"category":     a.Category,
			"read_time":    a.ReadTime,
			"publish_date": a.PublishDate,
			"html_content": a.HTMLContent,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, s.db.Create(a).Error
}

func (s *Service) upsertContent(c *models.ArticleContentModel) (bool, error) {
	if c.Slug == "" {
		return false, nil
	}

	var existing models.ArticleContentModel
	err := s.db.Where("slug = ?", c.Slug).First(&existing).Error
	if err == nil {
		return true, s.db.Model(&existing).Updates(map[string]interface{}{
			"article_id":   c.ArticleID,
			"html_content": c.HTMLContent,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, s.db.Create(c).Error
}

// upsertSubscriber folds a row into the flag model. When authoritative is
// false (split legacy tables) an existing row keeps its current flag.
func (s *Service) upsertSubscriber(sub *models.SubscriberModel, authoritative bool) (bool, error) {
	if sub.Email == "" {
		return false, nil
	}

	var existing models.SubscriberModel
	err := s.db.Where("email = ?", sub.Email).First(&existing).Error
	if err == nil {
		if !authoritative {
			return true, nil
		}
		updates := map[string]interface{}{"subscribed": sub.Subscribed}
		if !sub.SubscribedAt.IsZero() {
			updates["subscribed_at"] = sub.SubscribedAt
		}
		return true, s.db.Model(&existing).Updates(updates).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, s.db.Create(sub).Error
}

func (s *Service) upsertTestSubscriber(t *models.TestSubscriberModel) (bool, error) {
	if t.Email == "" {
		return false, nil
	}

	var existing models.TestSubscriberModel
	err := s.db.Where("email = ?", t.Email).First(&existing).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, s.db.Create(t).Error
}

// upsertByID replaces a row keyed by its legacy ObjectID. Rows without an id
// are inserted fresh.
func (s *Service) upsertByID(id string, record interface{}, probe interface{}) (bool, error) {
	if id == "" {
		return true, s.db.Create(record).Error
	}

	result := s.db.Where("id = ?", id).Delete(probe)
	if result.Error != nil {
		return false, result.Error
	}
	return true, s.db.Create(record).Error
}
