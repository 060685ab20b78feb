package models

import "time"

type Staff struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	HotelID      uint   `gorm:"not null;index" json:"hotel_id"`
	Hotel        Hotel  `gorm:"foreignKey:HotelID" json:"-"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);unique;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
	// PINHash diisi untuk staff operasional yang login lewat PIN
	PINHash       string `gorm:"type:varchar(255)" json:"-"`
	Role          string `gorm:"type:varchar(30);not null" json:"role"` // housekeeper, maintenance, manager, reception, admin
	Active        bool   `gorm:"not null;default:true" json:"active"`
	AssignedAreas string `gorm:"type:varchar(255)" json:"assigned_areas"`

	// Metrics housekeeping, di-update setiap cleaning selesai
	CleaningCount        int       `gorm:"not null;default:0" json:"cleaning_count"`
	TotalCleaningMinutes float64   `gorm:"not null;default:0" json:"total_cleaning_minutes"`
	AvgCleaningMinutes   float64   `gorm:"not null;default:0" json:"avg_cleaning_minutes"`
	CreatedAt            time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time `gorm:"not null" json:"updated_at"`
}
