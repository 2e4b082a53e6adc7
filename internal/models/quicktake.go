package models

// QuickTakeType discriminates quick-take content shapes.
type QuickTakeType string

const (
	QuickTakeText  QuickTakeType = "text"
	QuickTakeChart QuickTakeType = "chart"
	QuickTakeImage QuickTakeType = "image"
	QuickTakeQuote QuickTakeType = "quote"
)

// QuickTakeModel is a short-form social-style post. The optional fields are
// validated against Type at write time, not enforced structurally.
type QuickTakeModel struct {
	Base
	Type          QuickTakeType `json:"type"          gorm:"type:varchar(16);not null;index"`
	Content       string        `json:"content"       gorm:"type:text;not null"`
	ChartTitle    string        `json:"chartTitle"`
	ChartDesc     string        `json:"chartDescription" gorm:"column:chart_desc"`
	ImageURL      string        `json:"imageUrl"`
	Author        string        `json:"author"`
	Tags          StringArray   `json:"tags"          gorm:"type:longtext"`
	LikeCount     int           `json:"likes"         gorm:"column:like_count;default:0"`
	CommentsCount int           `json:"comments"      gorm:"default:0"`
	Trending      bool          `json:"trending"      gorm:"default:false"`
	IsPublished   bool          `json:"isPublished"   gorm:"default:true;index"`
}

func (QuickTakeModel) TableName() string { return "quick_takes" }
