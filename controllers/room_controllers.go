package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/live"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/services"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

type RoomController struct {
	DB     *gorm.DB
	Status *services.RoomStatusService
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{
		DB:     db,
		Status: services.NewRoomStatusService(db),
	}
}

// CreateRoom -> menambahkan room baru (onboarding)
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req struct {
		Number string `json:"number" binding:"required"`
		Floor  int    `json:"floor"`
		Type   string `json:"type"`
		Status string `json:"status"` // optional, default "available"
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hotelID := c.GetUint("hotel_id")
	room := models.Room{
		HotelID: hotelID,
		Number:  req.Number,
		Floor:   req.Floor,
		Type:    req.Type,
		Status:  services.RoomStatusAvailable,
	}
	if req.Status != "" {
		room.Status = req.Status
	}

	if err := rc.DB.Create(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Broadcast dengan data lengkap
	stats := rc.getDashboardStats(hotelID)
	live.BroadcastMessage(hotelID, live.Message{
		Event: live.EventRoomCreate,
		Data: map[string]interface{}{
			"room":  room,
			"stats": stats,
		},
	})

	utils.InfoLogger.Printf("New room created: %s (status=%s)", room.Number, room.Status)
	utils.RespondJSON(c, http.StatusCreated, "Room created successfully", room)
}

// GetAllRooms -> seluruh room milik hotel
func (rc *RoomController) GetAllRooms(c *gin.Context) {
	hotelID := c.GetUint("hotel_id")

	var rooms []models.Room
	if err := rc.DB.Preload("AssignedTo").
		Where("hotel_id = ?", hotelID).
		Order("number ASC").
		Find(&rooms).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of rooms", rooms)
}

// GetRoomByID -> detail satu room
func (rc *RoomController) GetRoomByID(c *gin.Context) {
	roomID := c.Param("room_id")
	var room models.Room
	if err := rc.DB.Preload("AssignedTo").First(&room, roomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if room.HotelID != c.GetUint("hotel_id") {
		utils.RespondError(c, http.StatusNotFound, services.ErrRoomNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Room detail", room)
}

// FindRoomsByStatus -> mis. list room need_cleaning
func (rc *RoomController) FindRoomsByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = services.RoomStatusAvailable
	}
	var rooms []models.Room
	if err := rc.DB.
		Where("hotel_id = ? AND status = ?", c.GetUint("hotel_id"), status).
		Order("number ASC").
		Find(&rooms).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rooms with status: "+status, rooms)
}

// UpdateRoomStatus -> transisi status lewat state machine
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	roomIDStr := c.Param("room_id")
	roomID, err := strconv.Atoi(roomIDStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid room id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	staff, err := staffFromContext(c, rc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	room, err := rc.Status.ApplyTransition(uint(roomID), body.Status, staff, body.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrUnknownStatus):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrTransitionNotAllowed),
			errors.Is(err, services.ErrStaffInactive):
			utils.RespondError(c, http.StatusForbidden, err)
		case errors.Is(err, services.ErrStatusConflict):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	live.BroadcastRoomUpdate(*room, rc.getDashboardStats(room.HotelID))

	utils.InfoLogger.Printf("Room %d status changed to %s by staff %d", room.ID, room.Status, staff.ID)
	utils.RespondJSON(c, http.StatusOK, "Room status updated", room)
}

// GetRoomHistory -> audit trail perubahan status
func (rc *RoomController) GetRoomHistory(c *gin.Context) {
	roomIDStr := c.Param("room_id")
	roomID, err := strconv.Atoi(roomIDStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid room id"))
		return
	}

	var room models.Room
	if err := rc.DB.First(&room, roomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if room.HotelID != c.GetUint("hotel_id") {
		utils.RespondError(c, http.StatusNotFound, services.ErrRoomNotFound)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := rc.Status.History(uint(roomID), limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Room status history", logs)
}

// DeleteRoom -> hanya untuk koreksi onboarding
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	roomID := c.Param("room_id")
	var room models.Room

	if err := rc.DB.First(&room, roomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if room.HotelID != c.GetUint("hotel_id") {
		utils.RespondError(c, http.StatusNotFound, services.ErrRoomNotFound)
		return
	}

	// Room yang sudah punya history tidak boleh dihapus
	var historyCount int64
	rc.DB.Model(&models.RoomStatusLog{}).Where("room_id = ?", room.ID).Count(&historyCount)
	if historyCount > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("room has status history and cannot be deleted"))
		return
	}

	if err := rc.DB.Delete(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := rc.getDashboardStats(room.HotelID)
	live.BroadcastMessage(room.HotelID, live.Message{
		Event: live.EventRoomDelete,
		Data: map[string]interface{}{
			"room_id": room.ID,
			"stats":   stats,
		},
	})

	utils.InfoLogger.Printf("Room %d deleted", room.ID)
	utils.RespondJSON(c, http.StatusOK, "Room deleted", gin.H{
		"id": room.ID,
	})
}

// getDashboardStats menghitung statistik room per status
func (rc *RoomController) getDashboardStats(hotelID uint) map[string]interface{} {
	var available, occupied, needCleaning, maintenance, total int64

	rc.DB.Model(&models.Room{}).Where("hotel_id = ? AND status = ?", hotelID, services.RoomStatusAvailable).Count(&available)
	rc.DB.Model(&models.Room{}).Where("hotel_id = ? AND status IN ?", hotelID,
		[]string{services.RoomStatusOccupied, services.RoomStatusCleanOccupied, services.RoomStatusDirtyOccupied, services.RoomStatusInHouse}).Count(&occupied)
	rc.DB.Model(&models.Room{}).Where("hotel_id = ? AND status IN ?", hotelID,
		[]string{services.RoomStatusNeedCleaning, services.RoomStatusDirtyOccupied, services.RoomStatusCheckout}).Count(&needCleaning)
	rc.DB.Model(&models.Room{}).Where("hotel_id = ? AND status = ?", hotelID, services.RoomStatusMaintenance).Count(&maintenance)
	rc.DB.Model(&models.Room{}).Where("hotel_id = ?", hotelID).Count(&total)

	return map[string]interface{}{
		"available":     available,
		"occupied":      occupied,
		"need_cleaning": needCleaning,
		"maintenance":   maintenance,
		"total":         total,
	}
}
