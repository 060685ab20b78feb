package services

import (
	"fmt"
	"sort"

	"github.com/yeremiapane/hotel-ops-app/models"
	"gorm.io/gorm"
)

// Assignment adalah satu pasangan room -> housekeeper hasil auto-assign.
type Assignment struct {
	RoomID     uint   `json:"room_id"`
	RoomNumber string `json:"room_number"`
	StaffID    uint   `json:"staff_id"`
	StaffName  string `json:"staff_name"`
}

// AssignmentResult dikembalikan apa adanya ke caller HTTP.
// Kondisi "tidak ada room / tidak ada staff" bukan error, cukup Success=false.
type AssignmentResult struct {
	Success            bool         `json:"success"`
	Message            string       `json:"message"`
	AssignmentsCreated int          `json:"assignmentsCreated"`
	Assignments        []Assignment `json:"asignaciones"`
}

// AssignmentService membagi room yang butuh cleaning ke housekeeper aktif.
type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// cleaningQueueStatuses adalah keluarga status "butuh cleaning".
// Room checkout hanya ikut antrian selama flag needs_cleaning masih terpasang.
var cleaningQueueStatuses = []string{
	RoomStatusNeedCleaning,
	RoomStatusDirtyOccupied,
}

const cleaningQueueCond = "(status IN ? OR (status = ? AND needs_cleaning = ?))"

// AutoAssign membagi workload dengan least-loaded-first: setiap room jatuh ke
// housekeeper dengan beban paling kecil (termasuk assignment yang baru dibuat
// di invocation yang sama), tie-break room number ascending lalu staff ID.
func (s *AssignmentService) AutoAssign(hotelID uint) (*AssignmentResult, error) {
	var rooms []models.Room
	if err := s.db.
		Where("hotel_id = ?", hotelID).
		Where(cleaningQueueCond, cleaningQueueStatuses, RoomStatusCheckout, true).
		Order("number ASC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}

	if len(rooms) == 0 {
		return &AssignmentResult{
			Success:     false,
			Message:     "no rooms need cleaning",
			Assignments: []Assignment{},
		}, nil
	}

	var staff []models.Staff
	if err := s.db.
		Where("hotel_id = ? AND role = ? AND active = ?", hotelID, RoleHousekeeper, true).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}

	if len(staff) == 0 {
		return &AssignmentResult{
			Success:     false,
			Message:     "no active housekeeping staff available",
			Assignments: []Assignment{},
		}, nil
	}

	// Beban awal: jumlah room yang saat ini sudah assigned ke tiap staff.
	loads := make(map[uint]int64, len(staff))
	for _, hk := range staff {
		var count int64
		if err := s.db.Model(&models.Room{}).
			Where("hotel_id = ? AND assigned_to_id = ?", hotelID, hk.ID).
			Where(cleaningQueueCond, cleaningQueueStatuses, RoomStatusCheckout, true).
			Count(&count).Error; err != nil {
			return nil, err
		}
		loads[hk.ID] = count
	}

	assignments := make([]Assignment, 0, len(rooms))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, room := range rooms {
			// Room yang sudah dipegang housekeeper aktif tidak direbut
			if room.AssignedToID != nil {
				if _, held := loads[*room.AssignedToID]; held {
					continue
				}
			}

			hk := pickLeastLoaded(staff, loads)

			if err := tx.Model(&models.Room{}).
				Where("id = ?", room.ID).
				Updates(map[string]interface{}{"assigned_to_id": hk.ID}).Error; err != nil {
				return err
			}

			logEntry := models.RoomStatusLog{
				HotelID:        hotelID,
				RoomID:         room.ID,
				PreviousStatus: room.Status,
				NewStatus:      room.Status,
				StaffID:        &hk.ID,
				Note:           fmt.Sprintf("auto-assigned to %s", hk.Name),
			}
			if err := tx.Create(&logEntry).Error; err != nil {
				return err
			}

			loads[hk.ID]++
			assignments = append(assignments, Assignment{
				RoomID:     room.ID,
				RoomNumber: room.Number,
				StaffID:    hk.ID,
				StaffName:  hk.Name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(assignments) == 0 {
		return &AssignmentResult{
			Success:     false,
			Message:     "all rooms in the cleaning queue are already assigned",
			Assignments: []Assignment{},
		}, nil
	}

	return &AssignmentResult{
		Success:            true,
		Message:            fmt.Sprintf("%d rooms assigned across %d staff", len(assignments), len(staff)),
		AssignmentsCreated: len(assignments),
		Assignments:        assignments,
	}, nil
}

func pickLeastLoaded(staff []models.Staff, loads map[uint]int64) models.Staff {
	sorted := make([]models.Staff, len(staff))
	copy(sorted, staff)
	sort.SliceStable(sorted, func(i, j int) bool {
		if loads[sorted[i].ID] != loads[sorted[j].ID] {
			return loads[sorted[i].ID] < loads[sorted[j].ID]
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted[0]
}
