package subscriber

import (
	"regexp"
	"strings"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/database"
	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/pagination"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"go.uber.org/zap"
)

// Outcome classifies what a lifecycle operation did to a subscriber record.
type Outcome string

const (
	OutcomeAdded               Outcome = "added"
	OutcomeReactivated         Outcome = "reactivated"
	OutcomeAlreadySubscribed   Outcome = "already_subscribed"
	OutcomeUnsubscribed        Outcome = "unsubscribed"
	OutcomeAlreadyUnsubscribed Outcome = "already_unsubscribed"
	OutcomeNotFound            Outcome = "not_found"
	OutcomeInvalid             Outcome = "invalid"
)

// ImportReport partitions a bulk import. Every unique input email lands in
// exactly one bucket.
type ImportReport struct {
	Added       []string `json:"added"`
	Reactivated []string `json:"reactivated"`
	Existing    []string `json:"existing"`
	Invalid     []string `json:"invalid"`
}

// WelcomeNotifier delivers the welcome email after a new subscription.
type WelcomeNotifier interface {
	SendWelcome(email string) error
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Normalize lowercases and trims an email address.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Valid reports whether the (normalized) email is acceptable.
func Valid(email string) bool {
	return emailPattern.MatchString(email)
}

// Service manages the subscriber lifecycle. A subscriber is never duplicated:
// re-subscribing a known address reactivates the existing row.
type Service struct {
	store    Store
	notifier WelcomeNotifier
	log      *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// SetNotifier wires the welcome email hook. Welcome delivery is best effort
// and never fails the subscription itself.
func (s *Service) SetNotifier(n WelcomeNotifier) { s.notifier = n }

// Subscribe registers an email, reactivating it if it was unsubscribed before.
func (s *Service) Subscribe(email string) (Outcome, error) {
	email = Normalize(email)
	if !Valid(email) {
		return OutcomeInvalid, nil
	}

	existing, err := s.store.FindByEmail(email)
	if err != nil {
		return "", err
	}

	switch {
	case existing == nil:
		sub := &models.SubscriberModel{
			Email:        email,
			Subscribed:   true,
			SubscribedAt: time.Now(),
		}
		if err := s.store.Create(sub); err != nil {
			// A concurrent subscribe for the same address can win the
			// insert; the unique index on email reports it.
			if database.IsDuplicateKey(err) {
				return OutcomeAlreadySubscribed, nil
			}
			return "", err
		}
		s.sendWelcome(email)
		return OutcomeAdded, nil
	case !existing.Subscribed:
		if err := s.store.SetSubscribed(existing.ID, true, time.Now()); err != nil {
			return "", err
		}
		s.sendWelcome(email)
		return OutcomeReactivated, nil
	default:
		return OutcomeAlreadySubscribed, nil
	}
}

// Unsubscribe flips the flag off. Unsubscribing an already-unsubscribed or
// unknown address is reported distinctly but is not an internal error.
func (s *Service) Unsubscribe(email string) (Outcome, error) {
	email = Normalize(email)
	if !Valid(email) {
		return OutcomeInvalid, nil
	}

	existing, err := s.store.FindByEmail(email)
	if err != nil {
		return "", err
	}

	switch {
	case existing == nil:
		return OutcomeNotFound, nil
	case !existing.Subscribed:
		return OutcomeAlreadyUnsubscribed, nil
	default:
		if err := s.store.SetSubscribed(existing.ID, false, time.Time{}); err != nil {
			return "", err
		}
		return OutcomeUnsubscribed, nil
	}
}

// BulkImport subscribes a batch of addresses without sending welcome emails.
// Invalid entries are collected rather than aborting the batch. Within one
// batch the first occurrence of an address decides; later duplicates are
// skipped so every address lands in exactly one bucket.
func (s *Service) BulkImport(emails []string) (*ImportReport, error) {
	report := &ImportReport{
		Added:       []string{},
		Reactivated: []string{},
		Existing:    []string{},
		Invalid:     []string{},
	}

	seen := make(map[string]bool, len(emails))
	for _, raw := range emails {
		email := Normalize(raw)
		if !Valid(email) {
			report.Invalid = append(report.Invalid, raw)
			continue
		}
		if seen[email] {
			continue
		}
		seen[email] = true

		existing, err := s.store.FindByEmail(email)
		if err != nil {
			s.log.Warn("bulk import lookup failed", zap.String("email", email), zap.Error(err))
			report.Invalid = append(report.Invalid, email)
			continue
		}

		switch {
		case existing == nil:
			sub := &models.SubscriberModel{
				Email:        email,
				Subscribed:   true,
				SubscribedAt: time.Now(),
			}
			if err := s.store.Create(sub); err != nil {
				if database.IsDuplicateKey(err) {
					report.Existing = append(report.Existing, email)
					continue
				}
				s.log.Warn("bulk import create failed", zap.String("email", email), zap.Error(err))
				report.Invalid = append(report.Invalid, email)
				continue
			}
			report.Added = append(report.Added, email)
		case !existing.Subscribed:
			if err := s.store.SetSubscribed(existing.ID, true, time.Now()); err != nil {
				s.log.Warn("bulk import reactivate failed", zap.String("email", email), zap.Error(err))
				report.Invalid = append(report.Invalid, email)
				continue
			}
			report.Reactivated = append(report.Reactivated, email)
		default:
			report.Existing = append(report.Existing, email)
		}
	}

	return report, nil
}

// Toggle flips the subscription flag by record ID and returns the updated
// record, or (nil, nil) when the ID does not exist.
func (s *Service) Toggle(id string) (*models.SubscriberModel, error) {
	sub, err := s.store.FindByID(id)
	if err != nil || sub == nil {
		return nil, err
	}

	next := !sub.Subscribed
	at := time.Time{}
	if next {
		at = time.Now()
	}
	if err := s.store.SetSubscribed(sub.ID, next, at); err != nil {
		return nil, err
	}
	sub.Subscribed = next
	if next {
		sub.SubscribedAt = at
	}
	return sub, nil
}

// Delete removes a subscriber row entirely. Returns false when the ID does
// not exist.
func (s *Service) Delete(id string) (bool, error) {
	return s.store.Delete(id)
}

// List returns subscribers, newest first.
func (s *Service) List(q pagination.Query) ([]models.SubscriberModel, response.Pagination, error) {
	return s.store.List(q)
}

// SubscribedEmails returns every active address, oldest subscription first.
func (s *Service) SubscribedEmails() ([]string, error) {
	return s.store.SubscribedEmails()
}

func (s *Service) sendWelcome(email string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendWelcome(email); err != nil {
		s.log.Warn("welcome email failed", zap.String("email", email), zap.Error(err))
	}
}
