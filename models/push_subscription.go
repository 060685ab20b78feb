package models

import "time"

// PushSubscription menyimpan token device yang subscribe ke sebuah topic.
// Pengiriman push-nya sendiri ditangani provider eksternal.
type PushSubscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HotelID   uint      `gorm:"index" json:"hotel_id"`
	Token     string    `gorm:"type:varchar(255);not null;index" json:"token"`
	Topic     string    `gorm:"type:varchar(50);not null;index" json:"topic"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
