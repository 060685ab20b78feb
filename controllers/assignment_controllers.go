package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/live"
	"github.com/yeremiapane/hotel-ops-app/services"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

type AssignmentController struct {
	DB      *gorm.DB
	Assigns *services.AssignmentService
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{
		DB:      db,
		Assigns: services.NewAssignmentService(db),
	}
}

// AutoAssign -> membagi room yang butuh cleaning ke housekeeper aktif.
// Body {date, options} diterima untuk kompatibilitas client lama tapi
// assignment selalu dihitung dari state sekarang.
func (asc *AssignmentController) AutoAssign(c *gin.Context) {
	var body struct {
		Date    string                 `json:"date"`
		Options map[string]interface{} `json:"options"`
	}
	// Body boleh kosong
	_ = c.ShouldBindJSON(&body)

	hotelID := c.GetUint("hotel_id")

	result, err := asc.Assigns.AutoAssign(hotelID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if result.Success {
		live.BroadcastMessage(hotelID, live.Message{
			Event: live.EventAssignmentUpdate,
			Data:  result,
		})
		utils.InfoLogger.Printf("Auto-assignment for hotel %d: %d rooms assigned", hotelID, result.AssignmentsCreated)
	}

	c.JSON(http.StatusOK, result)
}
