package models

import "time"

// RoomStatusLog adalah audit trail untuk setiap perubahan status room.
// Append-only: tidak pernah di-update atau dihapus.
type RoomStatusLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	HotelID        uint      `gorm:"not null;index" json:"hotel_id"`
	RoomID         uint      `gorm:"not null;index" json:"room_id"`
	Room           Room      `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	PreviousStatus string    `gorm:"type:varchar(30);not null" json:"previous_status"`
	NewStatus      string    `gorm:"type:varchar(30);not null" json:"new_status"`
	StaffID        *uint     `json:"staff_id,omitempty"` // nil = system actor (night audit)
	Staff          *Staff    `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Note           string    `gorm:"type:text" json:"note"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}
