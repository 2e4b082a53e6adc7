package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

const welcomeTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h2 style="color:#333">Welcome to {{.SiteName}}</h2>
  <p>Thanks for subscribing! You'll get an email whenever a new article goes live.</p>
  <p style="color:#999;font-size:12px;margin-top:24px">
    Changed your mind? <a href="{{.UnsubscribeURL}}" style="color:#999">Unsubscribe</a> anytime.
  </p>
  <p style="font-size:10px;color:#bbb;text-align:center">&copy;{{year}} {{.SiteName}}</p>
</div>
</body>
</html>`

const newArticleTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <p style="font-size:14px;color:#666">{{.SiteName}} just published:</p>
  <h1 style="font-size:20px;color:#333">{{.Title}}</h1>
  <p style="font-size:14px;line-height:24px;color:#444">{{.Excerpt}}</p>
  <p style="margin-top:24px">
    <a href="{{.ArticleURL}}" style="background:#4f46e5;color:#fff;padding:10px 18px;text-decoration:none;border-radius:4px">Read the article</a>
  </p>
  <p style="color:#999;font-size:12px;margin-top:24px">
    <a href="{{.UnsubscribeURL}}" style="color:#999">Unsubscribe</a>
  </p>
  <p style="font-size:10px;color:#bbb;text-align:center">&copy;{{year}} {{.SiteName}}</p>
</div>
</body>
</html>`

// WelcomeData is the data for welcome emails.
type WelcomeData struct {
	SiteName       string
	UnsubscribeURL string
}

// NewArticleData is the data for new-article notification emails.
type NewArticleData struct {
	SiteName       string
	Title          string
	Excerpt        string
	ArticleURL     string
	UnsubscribeURL string
}

func renderTemplate(tpl string, data interface{}) (string, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
	}).Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendWelcome sends the welcome email to a new subscriber.
func (s *Sender) SendWelcome(to string, data WelcomeData) error {
	if strings.TrimSpace(data.SiteName) == "" {
		data.SiteName = "Indrita"
	}
	html, err := renderTemplate(welcomeTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Welcome to %s", data.SiteName),
		HTML:    html,
	})
}

// SendNewArticle sends a new-article notification to a single recipient.
func (s *Sender) SendNewArticle(to string, data NewArticleData) error {
	if strings.TrimSpace(data.SiteName) == "" {
		data.SiteName = "Indrita"
	}
	html, err := renderTemplate(newArticleTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{to},
		Subject: fmt.Sprintf("[%s] %s", data.SiteName, data.Title),
		HTML:    html,
	})
}
