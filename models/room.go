package models

import "time"

type Room struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	HotelID          uint       `gorm:"not null;index" json:"hotel_id"`
	Hotel            Hotel      `gorm:"foreignKey:HotelID" json:"-"`
	Number           string     `gorm:"type:varchar(20);not null" json:"number"`
	Floor            int        `gorm:"not null;default:0" json:"floor"`
	Type             string     `gorm:"type:varchar(50)" json:"type"`
	Status           string     `gorm:"type:varchar(30);not null;default:'available'" json:"status"`
	LastStatusChange *time.Time `json:"last_status_change,omitempty"`
	AssignedToID     *uint      `gorm:"index" json:"assigned_to_id,omitempty"`
	AssignedTo       *Staff     `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	LastCleanedAt    *time.Time `json:"last_cleaned_at,omitempty"`
	// CleaningStartedAt terisi selama room berada di salah satu status cleaning_*
	CleaningStartedAt *time.Time `json:"cleaning_started_at,omitempty"`
	CheckoutAt        *time.Time `json:"checkout_at,omitempty"`
	NeedsCleaning     bool       `gorm:"not null;default:false" json:"needs_cleaning"`
	PriorityLevel     string     `gorm:"type:varchar(10);not null;default:'normal'" json:"priority_level"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
}
