package models

import "time"

// ArticleModel is a long-form article. Content lives on the article itself
// (HTMLContent); the separate articlecontents collection is legacy, see
// ArticleContentModel.
type ArticleModel struct {
	Base
	Title       string      `json:"title"       gorm:"not null"`
	Slug        string      `json:"slug"        gorm:"uniqueIndex;not null"`
	Excerpt     string      `json:"excerpt"     gorm:"type:text"`
	ImageURL    string      `json:"imageUrl"`
	Author      string      `json:"author"`
	Category    StringArray `json:"category"    gorm:"type:longtext"`
	ReadTime    string      `json:"readTime"`
	PublishDate time.Time   `json:"publishDate"`
	HTMLContent string      `json:"htmlContent" gorm:"column:html_content;type:longtext"`
}

func (ArticleModel) TableName() string { return "articles" }

// ArticleContentModel is the legacy secondary content store. Historically the
// article body lived here, keyed by article id or matching slug. The
// reconciliation routines keep it consistent until the migration is retired.
type ArticleContentModel struct {
	Base
	ArticleID   string `json:"articleId"   gorm:"index;not null"`
	Slug        string `json:"slug"        gorm:"uniqueIndex;not null"`
	HTMLContent string `json:"htmlContent" gorm:"column:html_content;type:longtext"`
}

func (ArticleContentModel) TableName() string { return "article_contents" }
