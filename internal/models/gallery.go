package models

import "time"

// GalleryModel is a dated gallery image.
type GalleryModel struct {
	Base
	ImageURL string    `json:"imageUrl" gorm:"not null"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
}

func (GalleryModel) TableName() string { return "galleries" }
