package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

type GuestController struct {
	DB *gorm.DB
}

func NewGuestController(db *gorm.DB) *GuestController {
	return &GuestController{DB: db}
}

// ScanRoom -> tamu scan QR di pintu kamar, dapat session token untuk
// membuat guest request. Sesi lama di kamar yang sama di-reuse.
func (gc *GuestController) ScanRoom(c *gin.Context) {
	roomID := c.Param("room_id")

	var room models.Room
	if err := gc.DB.First(&room, roomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
		return
	}

	var guest models.Guest
	err := gc.DB.Where("room_id = ? AND status = ?", room.ID, "active").First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		guest = models.Guest{
			HotelID:      room.HotelID,
			RoomID:       room.ID,
			SessionToken: uuid.NewString(),
			Status:       "active",
		}
		if err := gc.DB.Create(&guest).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.InfoLogger.Printf("New guest session for room %s", room.Number)
	} else if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Guest session", gin.H{
		"session_token": guest.SessionToken,
		"room_id":       room.ID,
		"room_number":   room.Number,
	})
}

// guestFromSession memvalidasi session token tamu terhadap room tujuan.
func guestFromSession(c *gin.Context, db *gorm.DB, roomID uint) (*models.Guest, error) {
	token := c.GetHeader("X-Guest-Session")
	if token == "" {
		token = c.Query("session_token")
	}
	if token == "" {
		return nil, errors.New("guest session token missing")
	}

	var guest models.Guest
	if err := db.Where("session_token = ? AND status = ?", token, "active").First(&guest).Error; err != nil {
		return nil, errors.New("invalid guest session")
	}
	if guest.RoomID != roomID {
		return nil, errors.New("invalid guest session")
	}
	return &guest, nil
}
