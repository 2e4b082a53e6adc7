package quicktake

import (
	"errors"
	"testing"

	"github.com/counterclone/indrita-blog-sub000/internal/models"
)

func TestValidateVariant(t *testing.T) {
	tests := []struct {
		name    string
		qt      models.QuickTakeModel
		wantErr bool
	}{
		{
			name: "text needs nothing extra",
			qt:   models.QuickTakeModel{Type: models.QuickTakeText, Content: "hello"},
		},
		{
			name: "quote requires author",
			qt:   models.QuickTakeModel{Type: models.QuickTakeQuote, Content: "stay hungry"},

			wantErr: true,
		},
		{
			name: "quote with author",
			qt:   models.QuickTakeModel{Type: models.QuickTakeQuote, Content: "stay hungry", Author: "sj"},
		},
		{
			name:    "chart requires chart title",
			qt:      models.QuickTakeModel{Type: models.QuickTakeChart, Content: "cpi trend"},
			wantErr: true,
		},
		{
			name: "chart with title",
			qt:   models.QuickTakeModel{Type: models.QuickTakeChart, Content: "cpi trend", ChartTitle: "CPI YoY"},
		},
		{
			name:    "image requires image url",
			qt:      models.QuickTakeModel{Type: models.QuickTakeImage, Content: "sunset"},
			wantErr: true,
		},
		{
			name: "image with url",
			qt:   models.QuickTakeModel{Type: models.QuickTakeImage, Content: "sunset", ImageURL: "https://cdn/x.jpg"},
		},
		{
			name:    "unknown type rejected",
			qt:      models.QuickTakeModel{Type: "video", Content: "clip"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateVariant(&tt.qt)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVariant) {
					t.Fatalf("err = %v, want ErrInvalidVariant", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyCreateDefaults(t *testing.T) {
	qt := applyCreate(&CreateQuickTakeDTO{Type: "text", Content: "hi", Tags: []string{"macro"}})
	if !qt.IsPublished {
		t.Fatal("new takes default to published")
	}
	if len(qt.Tags) != 1 || qt.Tags[0] != "macro" {
		t.Fatalf("tags = %v", qt.Tags)
	}

	hidden := false
	qt = applyCreate(&CreateQuickTakeDTO{Type: "text", Content: "hi", IsPublished: &hidden})
	if qt.IsPublished {
		t.Fatal("explicit isPublished=false must stick")
	}
}
