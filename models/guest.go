package models

import "time"

// Guest adalah sesi tamu yang dibuat saat scan QR di pintu kamar.
// Session token dipakai untuk membuat guest request tanpa login staff.
type Guest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	HotelID      uint      `gorm:"not null;index" json:"hotel_id"`
	RoomID       uint      `gorm:"not null;index" json:"room_id"`
	Room         Room      `gorm:"foreignKey:RoomID" json:"room"`
	SessionToken string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_token"`
	Status       string    `gorm:"type:varchar(15);not null;default:'active'" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
