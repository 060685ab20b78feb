package models

import "time"

const (
	RequestStatusPending   = "pending"
	RequestStatusCompleted = "completed"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// GuestRequest adalah permintaan self-service dari tamu (handuk, amenities, dsb).
type GuestRequest struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	HotelID       uint        `gorm:"not null;index" json:"hotel_id"`
	RoomID        uint        `gorm:"not null;index" json:"room_id"`
	Room          Room        `gorm:"foreignKey:RoomID" json:"room"`
	ServiceItemID uint        `gorm:"not null" json:"service_item_id"`
	ServiceItem   ServiceItem `gorm:"foreignKey:ServiceItemID" json:"service_item"`
	TrackingCode  string      `gorm:"type:varchar(64);uniqueIndex" json:"tracking_code"`
	Status        string      `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	Priority      string      `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`
	Quantity      int         `gorm:"not null;default:1" json:"quantity"`
	Escalated     bool        `gorm:"not null;default:false" json:"escalated"`
	CompletedByID *uint       `json:"completed_by_id,omitempty"`
	CompletedBy   *Staff      `gorm:"foreignKey:CompletedByID" json:"completed_by,omitempty"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}
