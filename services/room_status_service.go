package services

import (
	"errors"
	"time"

	"github.com/yeremiapane/hotel-ops-app/live"
	"github.com/yeremiapane/hotel-ops-app/models"
	"gorm.io/gorm"
)

// Status room
const (
	RoomStatusAvailable        = "available"
	RoomStatusOccupied         = "occupied"
	RoomStatusNeedCleaning     = "need_cleaning"
	RoomStatusCleaningOccupied = "cleaning_occupied"
	RoomStatusCleanOccupied    = "clean_occupied"
	RoomStatusCleaningCheckout = "cleaning_checkout"
	RoomStatusCleaningTouch    = "cleaning_touch"
	RoomStatusInspection       = "inspection"
	RoomStatusMaintenance      = "maintenance"
	RoomStatusPublicAreas      = "public_areas"
	RoomStatusDirtyOccupied    = "dirty_occupied"
	RoomStatusCheckout         = "checkout"
	RoomStatusInHouse          = "in_house"
)

// Role staff
const (
	RoleHousekeeper = "housekeeper"
	RoleMaintenance = "maintenance"
	RoleManager     = "manager"
	RoleReception   = "reception"
	RoleAdmin       = "admin"
)

var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrStaffInactive        = errors.New("staff is not active")
	ErrUnknownStatus        = errors.New("unknown room status")
	ErrTransitionNotAllowed = errors.New("transition not allowed for this role")
	ErrStatusConflict       = errors.New("room status changed by another user, please retry")
)

var roomStatusSet = map[string]bool{
	RoomStatusAvailable:        true,
	RoomStatusOccupied:         true,
	RoomStatusNeedCleaning:     true,
	RoomStatusCleaningOccupied: true,
	RoomStatusCleanOccupied:    true,
	RoomStatusCleaningCheckout: true,
	RoomStatusCleaningTouch:    true,
	RoomStatusInspection:       true,
	RoomStatusMaintenance:      true,
	RoomStatusPublicAreas:      true,
	RoomStatusDirtyOccupied:    true,
	RoomStatusCheckout:         true,
	RoomStatusInHouse:          true,
}

// allowedTransitions adalah satu-satunya tabel role -> status tujuan.
// Housekeeper boleh masuk ke status cleaning dan menutupnya ke
// clean_occupied / available; manager meng-inspect dan me-release room.
var allowedTransitions = map[string]map[string]bool{
	RoleHousekeeper: {
		RoomStatusCleaningOccupied: true,
		RoomStatusCleaningCheckout: true,
		RoomStatusCleaningTouch:    true,
		RoomStatusPublicAreas:      true,
		RoomStatusCleanOccupied:    true,
		RoomStatusAvailable:        true,
	},
	RoleManager: {
		RoomStatusInspection: true,
		RoomStatusAvailable:  true,
	},
	RoleMaintenance: {
		RoomStatusMaintenance: true,
		RoomStatusAvailable:   true,
	},
	RoleReception: {
		RoomStatusAvailable:    true,
		RoomStatusOccupied:     true,
		RoomStatusCheckout:     true,
		RoomStatusInHouse:      true,
		RoomStatusNeedCleaning: true,
	},
}

// Status yang membuka timer cleaning
func isCleaningStatus(status string) bool {
	switch status {
	case RoomStatusCleaningOccupied, RoomStatusCleaningCheckout, RoomStatusCleaningTouch:
		return true
	}
	return false
}

// Status yang menutup timer cleaning saat keluar dari status cleaning
func closesCleaningTimer(status string) bool {
	switch status {
	case RoomStatusAvailable, RoomStatusInspection, RoomStatusCleanOccupied:
		return true
	}
	return false
}

// CanTransition mengecek apakah role boleh memindahkan room ke status tujuan.
func CanTransition(role, newStatus string) bool {
	if !roomStatusSet[newStatus] {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	allowed, ok := allowedTransitions[role]
	return ok && allowed[newStatus]
}

// RoomStatusService menerapkan transisi status room beserta audit trail-nya.
type RoomStatusService struct {
	db *gorm.DB
}

func NewRoomStatusService(db *gorm.DB) *RoomStatusService {
	return &RoomStatusService{db: db}
}

// ApplyTransition memindahkan room ke status baru atas nama staff.
// Ditolak tanpa mutasi kalau room tidak ada, staff nonaktif, status tidak
// dikenal, atau transisi tidak diizinkan untuk role tersebut. Update room
// dipagari compare-and-swap terhadap status sebelumnya supaya dua transisi
// bersamaan tidak saling menimpa.
func (s *RoomStatusService) ApplyTransition(roomID uint, newStatus string, staff *models.Staff, note string) (*models.Room, error) {
	if !staff.Active {
		return nil, ErrStaffInactive
	}
	if !roomStatusSet[newStatus] {
		return nil, ErrUnknownStatus
	}
	if !CanTransition(staff.Role, newStatus) {
		return nil, ErrTransitionNotAllowed
	}

	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	// Staff hanya boleh menyentuh room di hotelnya sendiri.
	// Pesan generik supaya tidak bocor room hotel lain.
	if room.HotelID != staff.HotelID {
		return nil, ErrRoomNotFound
	}

	previous := room.Status
	now := time.Now()

	var notif *models.Notification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":             newStatus,
			"last_status_change": now,
			"assigned_to_id":     staff.ID,
			"updated_at":         now,
		}

		// Buka timer saat masuk status cleaning
		if isCleaningStatus(newStatus) && !isCleaningStatus(previous) {
			updates["cleaning_started_at"] = now
		}

		// Tutup timer saat keluar dari status cleaning
		if isCleaningStatus(previous) && closesCleaningTimer(newStatus) {
			updates["cleaning_started_at"] = nil
			updates["last_cleaned_at"] = now
			updates["needs_cleaning"] = false
			updates["priority_level"] = models.PriorityNormal

			if room.CleaningStartedAt != nil {
				elapsed := now.Sub(*room.CleaningStartedAt).Minutes()
				// Menit cleaning dikreditkan ke housekeeper yang membuka
				// timer (assigned), bukan ke manager yang menutup status
				cleanerID := staff.ID
				if room.AssignedToID != nil {
					cleanerID = *room.AssignedToID
				}
				if err := updateCleanerMetrics(tx, cleanerID, elapsed); err != nil {
					return err
				}
			}
		}

		switch newStatus {
		case RoomStatusCheckout:
			updates["checkout_at"] = now
			updates["needs_cleaning"] = true
			updates["priority_level"] = models.PriorityNormal
			notif = &models.Notification{
				HotelID:  room.HotelID,
				Title:    "Checkout",
				Message:  "Room " + room.Number + " checked out and needs cleaning",
				Topic:    "housekeeping",
				Priority: models.PriorityNormal,
			}
		case RoomStatusInHouse:
			updates["priority_level"] = models.PriorityHigh
			notif = &models.Notification{
				HotelID:  room.HotelID,
				Title:    "In-house",
				Message:  "Room " + room.Number + " is in-house, cleaning is high priority",
				Topic:    "housekeeping",
				Priority: models.PriorityHigh,
			}
		}

		result := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, previous).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStatusConflict
		}

		logEntry := models.RoomStatusLog{
			HotelID:        room.HotelID,
			RoomID:         room.ID,
			PreviousStatus: previous,
			NewStatus:      newStatus,
			StaffID:        &staff.ID,
			Note:           note,
		}
		if err := tx.Create(&logEntry).Error; err != nil {
			return err
		}

		if notif != nil {
			if err := tx.Create(notif).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if notif != nil {
		live.BroadcastHousekeepingNotification(room.HotelID, *notif)
	}

	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// History mengembalikan audit trail sebuah room, terbaru dulu.
func (s *RoomStatusService) History(roomID uint, limit int) ([]models.RoomStatusLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []models.RoomStatusLog
	err := s.db.Preload("Staff").
		Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func updateCleanerMetrics(tx *gorm.DB, staffID uint, elapsedMinutes float64) error {
	var cleaner models.Staff
	if err := tx.First(&cleaner, staffID).Error; err != nil {
		return err
	}

	cleaner.CleaningCount++
	cleaner.TotalCleaningMinutes += elapsedMinutes
	cleaner.AvgCleaningMinutes = cleaner.TotalCleaningMinutes / float64(cleaner.CleaningCount)

	return tx.Model(&models.Staff{}).Where("id = ?", staffID).Updates(map[string]interface{}{
		"cleaning_count":         cleaner.CleaningCount,
		"total_cleaning_minutes": cleaner.TotalCleaningMinutes,
		"avg_cleaning_minutes":   cleaner.AvgCleaningMinutes,
	}).Error
}
