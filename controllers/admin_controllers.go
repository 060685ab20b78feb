package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/config"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/services"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> ringkasan operasional hotel untuk dashboard
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	hotelID := c.GetUint("hotel_id")

	statusCounts := make(map[string]int64)
	rows, err := ac.DB.Model(&models.Room{}).
		Select("status, count(*) as count").
		Where("hotel_id = ?", hotelID).
		Group("status").
		Rows()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			continue
		}
		statusCounts[status] = count
	}

	var pendingRequests, openMaintenance, activeHousekeepers int64
	ac.DB.Model(&models.GuestRequest{}).
		Where("hotel_id = ? AND status = ?", hotelID, models.RequestStatusPending).
		Count(&pendingRequests)
	ac.DB.Model(&models.MaintenanceRecord{}).
		Where("hotel_id = ? AND status <> ?", hotelID, models.MaintenanceStatusCompleted).
		Count(&openMaintenance)
	ac.DB.Model(&models.Staff{}).
		Where("hotel_id = ? AND role = ? AND active = ?", hotelID, services.RoleHousekeeper, true).
		Count(&activeHousekeepers)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"rooms_by_status":     statusCounts,
		"pending_requests":    pendingRequests,
		"open_maintenance":    openMaintenance,
		"active_housekeepers": activeHousekeepers,
	})
}

// GetHousekeepingAnalytics -> performa cleaning per housekeeper + volume harian
func (ac *AdminController) GetHousekeepingAnalytics(c *gin.Context) {
	hotelID := c.GetUint("hotel_id")

	var housekeepers []models.Staff
	if err := ac.DB.
		Where("hotel_id = ? AND role = ?", hotelID, services.RoleHousekeeper).
		Order("cleaning_count DESC").
		Find(&housekeepers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type cleanerStats struct {
		StaffID      uint    `json:"staff_id"`
		Name         string  `json:"name"`
		Count        int     `json:"cleaning_count"`
		AvgMinutes   float64 `json:"avg_cleaning_minutes"`
		AvgFormatted string  `json:"avg_formatted"`
	}
	stats := make([]cleanerStats, 0, len(housekeepers))
	for _, hk := range housekeepers {
		stats = append(stats, cleanerStats{
			StaffID:      hk.ID,
			Name:         hk.Name,
			Count:        hk.CleaningCount,
			AvgMinutes:   hk.AvgCleaningMinutes,
			AvgFormatted: utils.FormatMinutes(hk.AvgCleaningMinutes),
		})
	}

	// Volume transisi 7 hari terakhir
	since := time.Now().AddDate(0, 0, -7)
	var transitions int64
	ac.DB.Model(&models.RoomStatusLog{}).
		Where("hotel_id = ? AND created_at > ?", hotelID, since).
		Count(&transitions)

	utils.RespondJSON(c, http.StatusOK, "Housekeeping analytics", gin.H{
		"cleaners":              stats,
		"transitions_last_week": transitions,
	})
}

// RunNightAudit -> trigger manual untuk nightly reset (admin only)
func (ac *AdminController) RunNightAudit(c *gin.Context) {
	audit := services.NewNightAuditService(ac.DB, config.HotelLocation(), config.NightAuditHour())
	report, err := audit.RunOnce()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Manual night audit: %d/%d hotels, %d rooms updated",
		report.HotelsProcessed, report.TotalHotels, report.TotalRoomsUpdated)
	utils.RespondJSON(c, http.StatusOK, "Night audit completed", report)
}
