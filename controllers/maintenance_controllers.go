package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/live"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

type MaintenanceController struct {
	DB *gorm.DB
}

func NewMaintenanceController(db *gorm.DB) *MaintenanceController {
	return &MaintenanceController{DB: db}
}

// ReportMaintenance -> staff melaporkan masalah di sebuah room
func (mc *MaintenanceController) ReportMaintenance(c *gin.Context) {
	var body struct {
		RoomID       uint       `json:"room_id" binding:"required"`
		Category     string     `json:"category" binding:"required"`
		Priority     string     `json:"priority"`
		Description  string     `json:"description"`
		ScheduledFor *time.Time `json:"scheduled_for"`
		Images       string     `json:"images"` // JSON array of URL
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	staff, err := staffFromContext(c, mc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var room models.Room
	if err := mc.DB.First(&room, body.RoomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
		return
	}
	if room.HotelID != staff.HotelID {
		utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
		return
	}

	record := models.MaintenanceRecord{
		HotelID:      room.HotelID,
		RoomID:       room.ID,
		StaffID:      &staff.ID,
		Category:     body.Category,
		Priority:     models.PriorityNormal,
		Status:       models.MaintenanceStatusPending,
		Description:  body.Description,
		ScheduledFor: body.ScheduledFor,
		Images:       "[]",
	}
	if body.Priority != "" {
		record.Priority = body.Priority
	}
	if body.Images != "" {
		record.Images = body.Images
	}

	if err := mc.DB.Create(&record).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastMaintenanceUpdate(record)
	utils.InfoLogger.Printf("Maintenance reported for room %d (%s)", room.ID, record.Category)
	utils.RespondJSON(c, http.StatusCreated, "Maintenance reported", record)
}

// GetAllMaintenance -> daftar record hotel, filter status opsional
func (mc *MaintenanceController) GetAllMaintenance(c *gin.Context) {
	query := mc.DB.Preload("Room").Preload("Staff").
		Where("hotel_id = ?", c.GetUint("hotel_id"))

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var records []models.MaintenanceRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All maintenance records", records)
}

// StartMaintenance -> pending -> in_progress, stamp StartedAt
func (mc *MaintenanceController) StartMaintenance(c *gin.Context) {
	record, staff, ok := mc.loadRecord(c)
	if !ok {
		return
	}

	if record.Status != models.MaintenanceStatusPending {
		utils.RespondError(c, http.StatusBadRequest, errors.New("maintenance is not pending"))
		return
	}

	now := time.Now()
	record.Status = models.MaintenanceStatusInProgress
	record.StartedAt = &now
	record.StaffID = &staff.ID

	if err := mc.DB.Save(record).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastMaintenanceUpdate(*record)
	utils.RespondJSON(c, http.StatusOK, "Maintenance started", record)
}

// CompleteMaintenance -> in_progress -> completed, hitung elapsed
func (mc *MaintenanceController) CompleteMaintenance(c *gin.Context) {
	record, staff, ok := mc.loadRecord(c)
	if !ok {
		return
	}

	if record.Status != models.MaintenanceStatusInProgress {
		utils.RespondError(c, http.StatusBadRequest, errors.New("maintenance is not in progress"))
		return
	}

	now := time.Now()
	record.Status = models.MaintenanceStatusCompleted
	record.CompletedAt = &now
	record.StaffID = &staff.ID
	if record.StartedAt != nil {
		record.ElapsedMinutes = now.Sub(*record.StartedAt).Minutes()
	}

	if err := mc.DB.Save(record).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastMaintenanceUpdate(*record)
	utils.InfoLogger.Printf("Maintenance %d completed in %s", record.ID, utils.FormatMinutes(record.ElapsedMinutes))
	utils.RespondJSON(c, http.StatusOK, "Maintenance completed", record)
}

func (mc *MaintenanceController) loadRecord(c *gin.Context) (*models.MaintenanceRecord, *models.Staff, bool) {
	staff, err := staffFromContext(c, mc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return nil, nil, false
	}

	var record models.MaintenanceRecord
	if err := mc.DB.First(&record, c.Param("maint_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil, nil, false
	}
	if record.HotelID != staff.HotelID {
		utils.RespondError(c, http.StatusNotFound, errors.New("maintenance record not found"))
		return nil, nil, false
	}

	return &record, staff, true
}
