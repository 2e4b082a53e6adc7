// Package notify dispatches transactional email to subscribers.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/counterclone/indrita-blog-sub000/internal/config"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/mail"
	"go.uber.org/zap"
)

// MailSender is the slice of mail.Sender the dispatcher needs. Satisfied by
// *mail.Sender; tests substitute a fake.
type MailSender interface {
	Configured() error
	SendWelcome(to string, data mail.WelcomeData) error
	SendNewArticle(to string, data mail.NewArticleData) error
}

// RecipientSource resolves the full active-subscriber set.
type RecipientSource interface {
	SubscribedEmails() ([]string, error)
}

// Service sends transactional email to one or many recipients. Sends are
// sequential with no retry; a failed send is logged and skipped.
type Service struct {
	sender     MailSender
	source     RecipientSource
	site       config.SiteConfig
	serverBase string
	webBase    string
	log        *zap.Logger
}

func New(sender MailSender, source RecipientSource, cfg *config.AppConfig, log *zap.Logger) *Service {
	return &Service{
		sender:     sender,
		source:     source,
		site:       cfg.Site,
		serverBase: cfg.ServerBase(),
		webBase:    cfg.WebBase(),
		log:        log,
	}
}

// SendWelcome sends the welcome email to a single new subscriber.
func (s *Service) SendWelcome(email string) error {
	if err := s.sender.Configured(); err != nil {
		return err
	}
	return s.sender.SendWelcome(email, mail.WelcomeData{
		SiteName:       s.site.Name,
		UnsubscribeURL: s.unsubscribeURL(email),
	})
}

// SendNewArticle sends a new-article notification. When recipients is nil the
// full subscribed set is used. Each recipient gets an individual email with a
// personalized unsubscribe link; per-recipient failures are counted, not
// fatal. Returns sent count out of total attempted.
func (s *Service) SendNewArticle(title, excerpt, articleURL string, recipients []string) (sent, total int, err error) {
	if err := s.sender.Configured(); err != nil {
		return 0, 0, err
	}

	if recipients == nil {
		recipients, err = s.source.SubscribedEmails()
		if err != nil {
			return 0, 0, fmt.Errorf("resolve recipients: %w", err)
		}
	}

	total = len(recipients)
	for _, to := range recipients {
		data := mail.NewArticleData{
			SiteName:       s.site.Name,
			Title:          title,
			Excerpt:        excerpt,
			ArticleURL:     articleURL,
			UnsubscribeURL: s.unsubscribeURL(to),
		}
		if err := s.sender.SendNewArticle(to, data); err != nil {
			s.log.Warn("new-article email failed",
				zap.String("to", to),
				zap.Error(err),
			)
			continue
		}
		sent++
	}
	return sent, total, nil
}

// OnArticlePublish is the fire-and-forget hook called after an article is
// created. Dispatch failure never affects the write that triggered it.
func (s *Service) OnArticlePublish(title, excerpt, articleSlug string) {
	articleURL := s.articleURL(articleSlug)
	sent, total, err := s.SendNewArticle(title, excerpt, articleURL, nil)
	if err != nil {
		s.log.Warn("new-article dispatch skipped", zap.Error(err))
		return
	}
	s.log.Info("new-article dispatch done",
		zap.String("slug", articleSlug),
		zap.Int("sent", sent),
		zap.Int("total", total),
	)
}

func (s *Service) articleURL(articleSlug string) string {
	base := s.webBase
	if base == "" {
		base = s.serverBase
	}
	return base + "/articles/" + articleSlug
}

func (s *Service) unsubscribeURL(email string) string {
	base := strings.TrimRight(s.serverBase, "/")
	return base + "/api/subscribers/unsubscribe?email=" + url.QueryEscape(email)
}
