package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/hotel-ops-app/live"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

type RequestController struct {
	DB *gorm.DB
}

func NewRequestController(db *gorm.DB) *RequestController {
	return &RequestController{DB: db}
}

// CreateRequest -> tamu membuat permintaan layanan (tanpa login staff,
// butuh session token hasil scan QR)
func (rqc *RequestController) CreateRequest(c *gin.Context) {
	roomIDStr := c.Param("room_id")
	roomID, err := strconv.Atoi(roomIDStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid room id"))
		return
	}

	guest, err := guestFromSession(c, rqc.DB, uint(roomID))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var body struct {
		ServiceItemID uint   `json:"service_item_id" binding:"required"`
		Quantity      int    `json:"quantity"`
		Priority      string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.ServiceItem
	if err := rqc.DB.First(&item, body.ServiceItemID).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown service item"))
		return
	}
	if item.HotelID != guest.HotelID || !item.Available {
		utils.RespondError(c, http.StatusBadRequest, errors.New("service item not available"))
		return
	}

	request := models.GuestRequest{
		HotelID:       guest.HotelID,
		RoomID:        guest.RoomID,
		ServiceItemID: item.ID,
		TrackingCode:  uuid.NewString(),
		Status:        models.RequestStatusPending,
		Priority:      models.PriorityNormal,
		Quantity:      1,
	}
	if body.Quantity > 0 {
		request.Quantity = body.Quantity
	}
	if body.Priority == models.PriorityLow || body.Priority == models.PriorityHigh {
		request.Priority = body.Priority
	}

	if err := rqc.DB.Create(&request).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rqc.DB.Preload("Room").Preload("ServiceItem").First(&request, request.ID)
	live.BroadcastRequestCreate(request)

	utils.InfoLogger.Printf("Guest request created for room %d: %s x%d", request.RoomID, item.Name, request.Quantity)
	utils.RespondJSON(c, http.StatusCreated, "Request created", gin.H{
		"tracking_code": request.TrackingCode,
		"request":       request,
	})
}

// GetAllRequests -> daftar request hotel, filter status opsional
func (rqc *RequestController) GetAllRequests(c *gin.Context) {
	query := rqc.DB.Preload("Room").Preload("ServiceItem").Preload("CompletedBy").
		Where("hotel_id = ?", c.GetUint("hotel_id"))

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.GuestRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All requests", requests)
}

// CompleteRequest -> staff menyelesaikan request
func (rqc *RequestController) CompleteRequest(c *gin.Context) {
	requestID := c.Param("request_id")

	staff, err := staffFromContext(c, rqc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var request models.GuestRequest
	if err := rqc.DB.First(&request, requestID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if request.HotelID != staff.HotelID {
		utils.RespondError(c, http.StatusNotFound, errors.New("request not found"))
		return
	}
	if request.Status == models.RequestStatusCompleted {
		utils.RespondError(c, http.StatusBadRequest, errors.New("request already completed"))
		return
	}

	now := time.Now()
	request.Status = models.RequestStatusCompleted
	request.CompletedByID = &staff.ID
	request.CompletedAt = &now

	if err := rqc.DB.Save(&request).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rqc.DB.Preload("Room").Preload("ServiceItem").Preload("CompletedBy").First(&request, request.ID)
	live.BroadcastMessage(request.HotelID, live.Message{
		Event: live.EventRequestUpdate,
		Data:  request,
	})

	utils.InfoLogger.Printf("Request %d completed by staff %d", request.ID, staff.ID)
	utils.RespondJSON(c, http.StatusOK, "Request completed", request)
}
