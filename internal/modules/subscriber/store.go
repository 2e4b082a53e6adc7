package subscriber

import (
	"errors"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"gorm.io/gorm"
)

// Store is the persistence surface the lifecycle manager needs. The GORM
// implementation is the real one; tests use an in-memory fake.
type Store interface {
	FindByEmail(email string) (*models.SubscriberModel, error) // (nil, nil) when absent
	FindByID(id string) (*models.SubscriberModel, error)
	Create(sub *models.SubscriberModel) error
	SetSubscribed(id string, subscribed bool, at time.Time) error
	Delete(id string) (bool, error)
	List(q pagination.Query) ([]models.SubscriberModel, response.Pagination, error)
	SubscribedEmails() ([]string, error)
}

type gormStore struct{ db *gorm.DB }

// NewStore returns the GORM-backed subscriber store.
func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) FindByEmail(email string) (*models.SubscriberModel, error) {
	var sub models.SubscriberModel
	if err := s.db.Where("email = ?", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *gormStore) FindByID(id string) (*models.SubscriberModel, error) {
	var sub models.SubscriberModel
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *gormStore) Create(sub *models.SubscriberModel) error {
	return s.db.Create(sub).Error
}

func (s *gormStore) SetSubscribed(id string, subscribed bool, at time.Time) error {
	updates := map[string]interface{}{"subscribed": subscribed}
	if subscribed {
		updates["subscribed_at"] = at
	}
	return s.db.Model(&models.SubscriberModel{}).Where("id = ?", id).Updates(updates).Error
}

func (s *gormStore) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.SubscriberModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *gormStore) List(q pagination.Query) ([]models.SubscriberModel, response.Pagination, error) {
	tx := s.db.Model(&models.SubscriberModel{}).Order("created_at DESC")
	var subs []models.SubscriberModel
	pag, err := pagination.Paginate(tx, q, &subs)
	return subs, pag, err
}

func (s *gormStore) SubscribedEmails() ([]string, error) {
	var emails []string
	err := s.db.Model(&models.SubscriberModel{}).
		Where("subscribed = ?", true).
		Order("subscribed_at ASC").
		Pluck("email", &emails).Error
	return emails, err
}
