package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

type ServiceItemController struct {
	DB *gorm.DB
}

func NewServiceItemController(db *gorm.DB) *ServiceItemController {
	return &ServiceItemController{DB: db}
}

// GetAllServiceItems -> katalog layanan untuk guest portal.
// hotel_id dari query untuk akses publik, dari token untuk staff.
func (sic *ServiceItemController) GetAllServiceItems(c *gin.Context) {
	hotelID := c.GetUint("hotel_id")
	if hotelID == 0 {
		if q := c.Query("hotel_id"); q != "" {
			var hotel models.Hotel
			if err := sic.DB.First(&hotel, q).Error; err == nil {
				hotelID = hotel.ID
			}
		}
	}

	query := sic.DB.Where("hotel_id = ?", hotelID)
	if c.GetString("role") == "" {
		// Tamu hanya melihat layanan yang tersedia
		query = query.Where("available = ?", true)
	}

	var items []models.ServiceItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service items", items)
}

// CreateServiceItem (manager/admin)
func (sic *ServiceItemController) CreateServiceItem(c *gin.Context) {
	var body struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Available   *bool  `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.ServiceItem{
		HotelID:     c.GetUint("hotel_id"),
		Name:        body.Name,
		Description: body.Description,
		Available:   true,
	}
	if body.Available != nil {
		item.Available = *body.Available
	}

	if err := sic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Service item created: %s", item.Name)
	utils.RespondJSON(c, http.StatusCreated, "Service item created", item)
}

// UpdateServiceItem (manager/admin)
func (sic *ServiceItemController) UpdateServiceItem(c *gin.Context) {
	itemID := c.Param("item_id")

	var item models.ServiceItem
	if err := sic.DB.First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if item.HotelID != c.GetUint("hotel_id") {
		utils.RespondError(c, http.StatusNotFound, errors.New("service item not found"))
		return
	}

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Available   *bool   `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Description != nil {
		item.Description = *body.Description
	}
	if body.Available != nil {
		item.Available = *body.Available
	}

	if err := sic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service item updated", item)
}

// DeleteServiceItem (manager/admin)
func (sic *ServiceItemController) DeleteServiceItem(c *gin.Context) {
	itemID := c.Param("item_id")

	var item models.ServiceItem
	if err := sic.DB.First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if item.HotelID != c.GetUint("hotel_id") {
		utils.RespondError(c, http.StatusNotFound, errors.New("service item not found"))
		return
	}

	if err := sic.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service item deleted", gin.H{"item_id": item.ID})
}
