package models

import "time"

// SubscriberModel is the unified newsletter subscriber record. Email is the
// natural key, always stored lowercased and trimmed. Unsubscribing flips the
// flag and keeps the row so a later subscribe reactivates instead of
// duplicating.
type SubscriberModel struct {
	Base
	Email        string    `json:"email"        gorm:"uniqueIndex;not null"`
	Subscribed   bool      `json:"subscribed"   gorm:"default:true;index"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

func (SubscriberModel) TableName() string { return "subscribers" }

// TestSubscriberModel is the admin-curated recipient list for test sends.
type TestSubscriberModel struct {
	Base
	Email string `json:"email" gorm:"uniqueIndex;not null"`
}

func (TestSubscriberModel) TableName() string { return "test_subscribers" }
