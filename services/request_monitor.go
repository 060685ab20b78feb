package services

import (
	"log"
	"time"

	"github.com/yeremiapane/hotel-ops-app/live"
	"github.com/yeremiapane/hotel-ops-app/models"
	"gorm.io/gorm"
)

// RequestMonitor memantau guest request yang masih pending. Request yang
// menunggu lebih lama dari EscalateAfter dinaikkan ke priority high dan
// dibroadcast ke dashboard, satu kali per request.
type RequestMonitor struct {
	DB            *gorm.DB
	StopChan      chan struct{}
	Interval      time.Duration
	EscalateAfter time.Duration
}

func NewRequestMonitor(db *gorm.DB) *RequestMonitor {
	return &RequestMonitor{
		DB:            db,
		StopChan:      make(chan struct{}),
		Interval:      1 * time.Minute,
		EscalateAfter: 15 * time.Minute,
	}
}

func (rm *RequestMonitor) Start() {
	go func() {
		ticker := time.NewTicker(rm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rm.checkPendingRequests()
			case <-rm.StopChan:
				return
			}
		}
	}()
}

func (rm *RequestMonitor) Stop() {
	close(rm.StopChan)
}

func (rm *RequestMonitor) checkPendingRequests() {
	cutoff := time.Now().Add(-rm.EscalateAfter)

	var requests []models.GuestRequest
	if err := rm.DB.Preload("Room").Preload("ServiceItem").
		Where("status = ? AND escalated = ? AND created_at < ?",
			models.RequestStatusPending, false, cutoff).
		Limit(100).
		Find(&requests).Error; err != nil {
		log.Printf("Error fetching stale requests: %v", err)
		return
	}

	for _, req := range requests {
		err := rm.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.GuestRequest{}).
				Where("id = ? AND escalated = ?", req.ID, false).
				Updates(map[string]interface{}{
					"priority":  models.PriorityHigh,
					"escalated": true,
				}).Error; err != nil {
				return err
			}

			notif := models.Notification{
				HotelID:  req.HotelID,
				Title:    "Request escalated",
				Message:  "Guest request for room " + req.Room.Number + " is still pending",
				Topic:    "housekeeping",
				Priority: models.PriorityHigh,
			}
			return tx.Create(&notif).Error
		})
		if err != nil {
			log.Printf("Error escalating request %d: %v", req.ID, err)
			continue
		}

		req.Priority = models.PriorityHigh
		req.Escalated = true
		live.BroadcastRequestEscalated(req)
	}
}
