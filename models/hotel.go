package models

import "time"

// Subscription status untuk hotel
const (
	SubscriptionActive    = "active"
	SubscriptionTrial     = "trial"
	SubscriptionSuspended = "suspended"
)

type Hotel struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	Timezone           string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	SubscriptionStatus string    `gorm:"type:varchar(20);not null;default:'trial'" json:"subscription_status"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}
