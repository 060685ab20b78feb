package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/live"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

var topicPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// GetAllNotifications
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	var notifs []models.Notification
	if err := nc.DB.Preload("Staff").
		Where("hotel_id = ?", c.GetUint("hotel_id")).
		Order("created_at DESC").
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// CreateNotification -> broadcast atau specific staff
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		StaffID  *uint  `json:"staff_id"`
		Title    string `json:"title"`
		Message  string `json:"message" binding:"required"`
		Topic    string `json:"topic"`
		Priority string `json:"priority"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Topic != "" && !topicPattern.MatchString(body.Topic) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid topic"))
		return
	}

	notif := models.Notification{
		HotelID:  c.GetUint("hotel_id"),
		StaffID:  body.StaffID,
		Title:    body.Title,
		Message:  body.Message,
		Topic:    body.Topic,
		Priority: models.PriorityNormal,
	}
	if body.Priority != "" {
		notif.Priority = body.Priority
	}

	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastHousekeepingNotification(notif.HotelID, notif)
	utils.InfoLogger.Printf("Notification created: %v", notif.Message)

	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

// GetNotificationByID
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	idStr := c.Param("notif_id")
	id, _ := strconv.Atoi(idStr)

	var notif models.Notification
	if err := nc.DB.Preload("Staff").First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if notif.HotelID != c.GetUint("hotel_id") {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification detail", notif)
}

// DeleteNotification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	idStr := c.Param("notif_id")
	id, _ := strconv.Atoi(idStr)

	if err := nc.DB.
		Where("hotel_id = ?", c.GetUint("hotel_id")).
		Delete(&models.Notification{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": id})
}

// Subscribe -> daftarkan device token ke sebuah topic push
func (nc *NotificationController) Subscribe(c *gin.Context) {
	var body struct {
		Token   string `json:"token" binding:"required"`
		Topic   string `json:"topic" binding:"required"`
		HotelID uint   `json:"hotel_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !topicPattern.MatchString(body.Topic) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid topic"))
		return
	}

	// Satu token hanya sekali per topic
	var existing models.PushSubscription
	err := nc.DB.Where("token = ? AND topic = ?", body.Token, body.Topic).First(&existing).Error
	if err == nil {
		utils.RespondJSON(c, http.StatusOK, "Already subscribed", existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sub := models.PushSubscription{
		HotelID: body.HotelID,
		Token:   body.Token,
		Topic:   body.Topic,
	}
	if err := nc.DB.Create(&sub).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Push subscription added for topic %s", sub.Topic)
	utils.RespondJSON(c, http.StatusCreated, "Subscribed", sub)
}

// Unsubscribe -> hapus subscription token dari topic
func (nc *NotificationController) Unsubscribe(c *gin.Context) {
	var body struct {
		Token string `json:"token" binding:"required"`
		Topic string `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !topicPattern.MatchString(body.Topic) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid topic"))
		return
	}

	if err := nc.DB.
		Where("token = ? AND topic = ?", body.Token, body.Topic).
		Delete(&models.PushSubscription{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unsubscribed", nil)
}
