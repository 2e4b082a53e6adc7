package article

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
)

func TestCategoryFieldUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"array", `{"category":["macro","rates"]}`, []string{"macro", "rates"}},
		{"legacy scalar", `{"category":"markets"}`, []string{"markets"}},
		{"empty scalar", `{"category":"  "}`, []string{}},
		{"empty array", `{"category":[]}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dto struct {
				Category CategoryField `json:"category"`
			}
			if err := json.Unmarshal([]byte(tt.body), &dto); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual([]string(dto.Category), tt.want) {
				t.Fatalf("category = %v, want %v", dto.Category, tt.want)
			}
		})
	}
}

func TestCategoryFieldRejectsObjects(t *testing.T) {
	var f CategoryField
	if err := f.UnmarshalJSON([]byte(`{"nested":true}`)); err == nil {
		t.Fatal("expected error for object input")
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := renderMarkdown("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Heading") {
		t.Errorf("heading missing: %s", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("bold missing: %s", html)
	}
}

func sampleArticle() *models.ArticleModel {
	a := &models.ArticleModel{
		Title:       "Hello",
		Slug:        "hello",
		HTMLContent: "<p>hi</p>",
	}
	a.ID = "a1"
	return a
}

func TestToResponseBodyToggle(t *testing.T) {
	a := sampleArticle()
	resp := toResponse(a, false)
	if resp.HTMLContent != "" {
		t.Error("list responses must not carry the body")
	}
	resp = toResponse(a, true)
	if resp.HTMLContent != "<p>hi</p>" {
		t.Errorf("htmlContent = %q", resp.HTMLContent)
	}
	if resp.Category == nil {
		t.Error("category must serialize as [] not null")
	}
}
