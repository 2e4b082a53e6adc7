package models

import "time"

// ThoughtModel is a dated embedded-HTML snippet.
type ThoughtModel struct {
	Base
	Embed string    `json:"embed" gorm:"type:text;not null"`
	Date  time.Time `json:"date"`
}

func (ThoughtModel) TableName() string { return "thoughts" }
