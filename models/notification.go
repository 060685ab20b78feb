package models

import "time"

type Notification struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	HotelID uint   `gorm:"not null;index" json:"hotel_id"`
	StaffID *uint  `json:"staff_id,omitempty"` // nil = broadcast ke semua staff hotel
	Staff   *Staff `gorm:"foreignKey:StaffID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"staff,omitempty"`
	Title   string `gorm:"type:varchar(100)" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	// Topic dipakai untuk routing push notification (mis. "housekeeping")
	Topic     string    `gorm:"type:varchar(50)" json:"topic"`
	Priority  string    `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
