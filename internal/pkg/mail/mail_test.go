package mail

import (
	"errors"
	"strings"
	"testing"

	"github.com/counterclone/indrita-blog-sub000/internal/config"
)

func TestConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MailConfig
		ok   bool
	}{
		{"disabled", config.MailConfig{}, false},
		{"enabled without provider", config.MailConfig{Enable: true}, false},
		{"smtp host", config.MailConfig{Enable: true, Host: "smtp.example.com"}, true},
		{"resend with key", config.MailConfig{Enable: true, UseResend: true, ResendKey: "re_123"}, true},
		{"resend without key", config.MailConfig{Enable: true, UseResend: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.cfg).Configured()
			if tt.ok && err != nil {
				t.Fatalf("configured: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrNotConfigured) {
				t.Fatalf("err = %v, want ErrNotConfigured", err)
			}
		})
	}
}

func TestSendUnconfiguredFailsFast(t *testing.T) {
	s := New(config.MailConfig{})
	if err := s.Send(Message{To: []string{"x@y.com"}}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestRenderTemplates(t *testing.T) {
	html, err := renderTemplate(welcomeTpl, WelcomeData{
		SiteName:       "Indrita",
		UnsubscribeURL: "https://api/unsubscribe?email=a%40b.com",
	})
	if err != nil {
		t.Fatalf("render welcome: %v", err)
	}
	if !strings.Contains(html, "Welcome to Indrita") {
		t.Error("welcome body missing site name")
	}
	if !strings.Contains(html, "https://api/unsubscribe?email=a%40b.com") {
		t.Error("welcome body missing unsubscribe link")
	}

	html, err = renderTemplate(newArticleTpl, NewArticleData{
		SiteName:   "Indrita",
		Title:      "Q3 <Outlook>",
		Excerpt:    "Short summary",
		ArticleURL: "https://web/articles/q3-outlook",
	})
	if err != nil {
		t.Fatalf("render new article: %v", err)
	}
	// html/template must escape markup in the title.
	if strings.Contains(html, "Q3 <Outlook>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(html, "Q3 &lt;Outlook&gt;") {
		t.Error("escaped title missing")
	}
	if !strings.Contains(html, "https://web/articles/q3-outlook") {
		t.Error("article link missing")
	}
}
