package subscriber

import (
	"errors"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"gorm.io/gorm"
)

// TestListService manages the admin-curated list of test recipients used to
// preview newsletter sends without touching the real audience.
type TestListService struct {
	db *gorm.DB
}

func NewTestListService(db *gorm.DB) *TestListService {
	return &TestListService{db: db}
}

func (s *TestListService) List() ([]models.TestSubscriberModel, error) {
	var subs []models.TestSubscriberModel
	if err := s.db.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Add registers a test recipient. Adding a known address returns the
// existing record.
func (s *TestListService) Add(email string) (*models.TestSubscriberModel, bool, error) {
	email = Normalize(email)
	if !Valid(email) {
		return nil, false, ErrInvalidEmail
	}

	var existing models.TestSubscriberModel
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	sub := &models.TestSubscriberModel{Email: email}
	if err := s.db.Create(sub).Error; err != nil {
		return nil, false, err
	}
	return sub, true, nil
}

func (s *TestListService) Delete(id string) (bool, error) {
	result := s.db.Delete(&models.TestSubscriberModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Emails returns all test recipient addresses.
func (s *TestListService) Emails() ([]string, error) {
	var emails []string
	err := s.db.Model(&models.TestSubscriberModel{}).Order("created_at ASC").Pluck("email", &emails).Error
	return emails, err
}

// ErrInvalidEmail rejects malformed addresses before they reach storage.
var ErrInvalidEmail = errors.New("invalid email address")
