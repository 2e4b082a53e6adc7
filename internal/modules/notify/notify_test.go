package notify

import (
	"errors"
	"strings"
	"testing"

	"github.com/counterclone/indrita-blog-sub000/internal/config"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/mail"
	"go.uber.org/zap"
)

type fakeSender struct {
	configuredErr error
	failFor       map[string]bool

	welcomes []string
	articles []mail.NewArticleData
	sentTo   []string
}

func (f *fakeSender) Configured() error { return f.configuredErr }

func (f *fakeSender) SendWelcome(to string, data mail.WelcomeData) error {
	if f.failFor[to] {
		return errors.New("smtp rejected")
	}
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeSender) SendNewArticle(to string, data mail.NewArticleData) error {
	if f.failFor[to] {
		return errors.New("smtp rejected")
	}
	f.articles = append(f.articles, data)
	f.sentTo = append(f.sentTo, to)
	return nil
}

type fakeSource struct {
	emails []string
	err    error
}

func (f *fakeSource) SubscribedEmails() ([]string, error) { return f.emails, f.err }

func newTestService(sender *fakeSender, source *fakeSource) *Service {
	cfg := &config.AppConfig{
		Site: config.SiteConfig{
			Name:      "Indrita",
			WebURL:    "https://indrita.example",
			ServerURL: "https://api.indrita.example",
		},
	}
	return New(sender, source, cfg, zap.NewNop())
}

func TestSendNewArticleCountsFailures(t *testing.T) {
	sender := &fakeSender{failFor: map[string]bool{"b@example.com": true}}
	source := &fakeSource{emails: []string{"a@example.com", "b@example.com", "c@example.com"}}
	svc := newTestService(sender, source)

	sent, total, err := svc.SendNewArticle("Title", "Excerpt", "https://x/articles/t", nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if sent != 2 || total != 3 {
		t.Fatalf("sent/total = %d/%d, want 2/3", sent, total)
	}
	if len(sender.sentTo) != 2 {
		t.Fatalf("delivered to %v", sender.sentTo)
	}
}

func TestSendNewArticleExplicitRecipients(t *testing.T) {
	sender := &fakeSender{}
	// The source must not be consulted when recipients are supplied.
	source := &fakeSource{err: errors.New("must not be called")}
	svc := newTestService(sender, source)

	sent, total, err := svc.SendNewArticle("Title", "", "https://x", []string{"only@example.com"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if sent != 1 || total != 1 {
		t.Fatalf("sent/total = %d/%d, want 1/1", sent, total)
	}
}

func TestSendNewArticleConfigErrorIsFatal(t *testing.T) {
	sender := &fakeSender{configuredErr: mail.ErrNotConfigured}
	svc := newTestService(sender, &fakeSource{})

	_, _, err := svc.SendNewArticle("Title", "", "https://x", nil)
	if !errors.Is(err, mail.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if len(sender.sentTo) != 0 {
		t.Fatal("no mail may leave an unconfigured sender")
	}
}

func TestPersonalizedUnsubscribeLinks(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(sender, &fakeSource{emails: []string{"a+tag@example.com", "b@example.com"}})

	if _, _, err := svc.SendNewArticle("T", "", "https://x", nil); err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(sender.articles) != 2 {
		t.Fatalf("have %d payloads", len(sender.articles))
	}
	first := sender.articles[0].UnsubscribeURL
	if !strings.Contains(first, "a%2Btag%40example.com") {
		t.Errorf("unsubscribe url not escaped: %s", first)
	}
	if first == sender.articles[1].UnsubscribeURL {
		t.Error("unsubscribe links must be per recipient")
	}
	if !strings.HasPrefix(first, "https://api.indrita.example/api/subscribers/unsubscribe?email=") {
		t.Errorf("unsubscribe url = %s", first)
	}
}

func TestSendWelcome(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(sender, &fakeSource{})

	if err := svc.SendWelcome("new@example.com"); err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if len(sender.welcomes) != 1 || sender.welcomes[0] != "new@example.com" {
		t.Fatalf("welcomes = %v", sender.welcomes)
	}
}
