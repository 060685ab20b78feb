package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// GetAllStaff -> daftar staff hotel, bisa difilter role/active
func (sc *StaffController) GetAllStaff(c *gin.Context) {
	query := sc.DB.Where("hotel_id = ?", c.GetUint("hotel_id"))

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var staff []models.Staff
	if err := query.Order("name ASC").Find(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All staff", staff)
}

// GetStaffMetrics -> metrics cleaning per housekeeper
func (sc *StaffController) GetStaffMetrics(c *gin.Context) {
	staffID := c.Param("staff_id")

	var staff models.Staff
	if err := sc.DB.First(&staff, staffID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if staff.HotelID != c.GetUint("hotel_id") {
		utils.RespondError(c, http.StatusNotFound, errors.New("staff not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Staff metrics", gin.H{
		"staff_id":               staff.ID,
		"name":                   staff.Name,
		"cleaning_count":         staff.CleaningCount,
		"total_cleaning_minutes": staff.TotalCleaningMinutes,
		"avg_cleaning_minutes":   staff.AvgCleaningMinutes,
		"avg_cleaning_formatted": utils.FormatMinutes(staff.AvgCleaningMinutes),
	})
}

// SetStaffActive -> aktif/nonaktifkan staff (manager/admin)
func (sc *StaffController) SetStaffActive(c *gin.Context) {
	staffID := c.Param("staff_id")

	var body struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staff models.Staff
	if err := sc.DB.First(&staff, staffID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if staff.HotelID != c.GetUint("hotel_id") {
		utils.RespondError(c, http.StatusNotFound, errors.New("staff not found"))
		return
	}

	staff.Active = *body.Active
	if err := sc.DB.Save(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Staff %d active set to %v", staff.ID, staff.Active)
	utils.RespondJSON(c, http.StatusOK, "Staff updated", staff)
}
