package services

import (
	"time"

	"github.com/yeremiapane/hotel-ops-app/live"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

const nightAuditNote = "automatic day-change transition"

// NightAuditReport merangkum satu run nightly reset.
type NightAuditReport struct {
	TotalHotels       int `json:"total_hotels"`
	HotelsProcessed   int `json:"hotels_processed"`
	HotelsFailed      int `json:"hotels_failed"`
	TotalRoomsUpdated int `json:"total_rooms_updated"`
}

// NightAuditService menjalankan nightly reset: semua room occupied /
// clean_occupied dipaksa ke dirty_occupied setiap jam audit (default 05:00
// waktu hotel). Pola Start/Stop sama dengan background service lain.
type NightAuditService struct {
	DB       *gorm.DB
	Location *time.Location
	Hour     int
	StopChan chan struct{}
}

func NewNightAuditService(db *gorm.DB, loc *time.Location, hour int) *NightAuditService {
	if loc == nil {
		loc = time.UTC
	}
	return &NightAuditService{
		DB:       db,
		Location: loc,
		Hour:     hour,
		StopChan: make(chan struct{}),
	}
}

func (s *NightAuditService) Start() {
	go func() {
		for {
			timer := time.NewTimer(s.untilNextRun(time.Now()))
			select {
			case <-timer.C:
				report, err := s.RunOnce()
				if err != nil {
					utils.ErrorLogger.Printf("Night audit run failed: %v", err)
					continue
				}
				utils.InfoLogger.Printf("Night audit done: %d/%d hotels, %d rooms updated",
					report.HotelsProcessed, report.TotalHotels, report.TotalRoomsUpdated)
			case <-s.StopChan:
				timer.Stop()
				return
			}
		}
	}()
	utils.InfoLogger.Printf("Night audit scheduled daily at %02d:00 (%s)", s.Hour, s.Location)
}

func (s *NightAuditService) Stop() {
	close(s.StopChan)
}

// untilNextRun menghitung durasi sampai jam audit berikutnya di timezone hotel.
func (s *NightAuditService) untilNextRun(now time.Time) time.Duration {
	local := now.In(s.Location)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.Hour, 0, 0, 0, s.Location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}

// RunOnce memproses semua hotel active/trial. Kegagalan satu hotel hanya
// dicatat dan tidak menghentikan hotel lain. Idempotent: query sumber sudah
// mengecualikan dirty_occupied, run kedua tidak menulis apa-apa.
func (s *NightAuditService) RunOnce() (*NightAuditReport, error) {
	var hotels []models.Hotel
	if err := s.DB.
		Where("subscription_status IN ?", []string{models.SubscriptionActive, models.SubscriptionTrial}).
		Find(&hotels).Error; err != nil {
		return nil, err
	}

	report := &NightAuditReport{TotalHotels: len(hotels)}

	for _, hotel := range hotels {
		updated, err := s.runForHotel(hotel)
		if err != nil {
			report.HotelsFailed++
			utils.ErrorLogger.Printf("Night audit failed for hotel %d (%s): %v", hotel.ID, hotel.Name, err)
			continue
		}
		report.HotelsProcessed++
		report.TotalRoomsUpdated += updated

		if updated > 0 {
			live.BroadcastMessage(hotel.ID, live.Message{
				Event: live.EventAuditComplete,
				Data:  map[string]interface{}{"rooms_updated": updated},
			})
		}
	}

	return report, nil
}

// runForHotel menulis update room + history entry sebagai satu batch atomik.
func (s *NightAuditService) runForHotel(hotel models.Hotel) (int, error) {
	updated := 0

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var rooms []models.Room
		if err := tx.
			Where("hotel_id = ? AND status IN ?", hotel.ID,
				[]string{RoomStatusOccupied, RoomStatusCleanOccupied}).
			Find(&rooms).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, room := range rooms {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", room.ID).
				Updates(map[string]interface{}{
					"status":             RoomStatusDirtyOccupied,
					"last_status_change": now,
					"needs_cleaning":     true,
					"updated_at":         now,
				}).Error; err != nil {
				return err
			}

			// StaffID nil = system actor
			logEntry := models.RoomStatusLog{
				HotelID:        hotel.ID,
				RoomID:         room.ID,
				PreviousStatus: room.Status,
				NewStatus:      RoomStatusDirtyOccupied,
				Note:           nightAuditNote,
			}
			if err := tx.Create(&logEntry).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}
