package models

import "time"

const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
)

type MaintenanceRecord struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	HotelID        uint       `gorm:"not null;index" json:"hotel_id"`
	RoomID         uint       `gorm:"not null;index" json:"room_id"`
	Room           Room       `gorm:"foreignKey:RoomID" json:"room"`
	StaffID        *uint      `json:"staff_id,omitempty"`
	Staff          *Staff     `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Category       string     `gorm:"type:varchar(50);not null" json:"category"`
	Priority       string     `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`
	Status         string     `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	Description    string     `gorm:"type:text" json:"description"`
	ScheduledFor   *time.Time `json:"scheduled_for,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ElapsedMinutes float64    `gorm:"not null;default:0" json:"elapsed_minutes"`
	// Images disimpan sebagai JSON array of URL, sama seperti image_urls di menu
	Images    string    `gorm:"type:text;default:'[]'" json:"images"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
