package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-ops-app/controllers"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/services"
	"github.com/yeremiapane/hotel-ops-app/utils"
)

func setupRoomTestDB(t *testing.T) *gorm.DB {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Hotel{},
		&models.Staff{},
		&models.Room{},
		&models.RoomStatusLog{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	hotel := models.Hotel{Name: "Hotel Uji", SubscriptionStatus: models.SubscriptionActive}
	db.Create(&hotel)
	return db
}

// fakeAuth meniru AuthMiddleware: set identitas staff ke context
func fakeAuth(staff models.Staff) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("staff_id", staff.ID)
		c.Set("hotel_id", staff.HotelID)
		c.Set("role", staff.Role)
		c.Next()
	}
}

func setupRoomRouter(db *gorm.DB, staff models.Staff) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	roomCtrl := controllers.NewRoomController(db)

	authed := router.Group("/")
	authed.Use(fakeAuth(staff))
	authed.GET("/rooms", roomCtrl.GetAllRooms)
	authed.GET("/rooms/by-status", roomCtrl.FindRoomsByStatus)
	authed.PATCH("/rooms/:room_id/status", roomCtrl.UpdateRoomStatus)
	authed.GET("/rooms/:room_id/history", roomCtrl.GetRoomHistory)
	return router
}

func patchStatus(t *testing.T, router *gin.Engine, roomID uint, status string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(map[string]interface{}{"status": status})
	assert.NoError(t, err)

	req, err := http.NewRequest("PATCH", "/rooms/"+strconv.Itoa(int(roomID))+"/status", bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateRoomStatusEndpoint(t *testing.T) {
	db := setupRoomTestDB(t)

	hk := models.Staff{HotelID: 1, Name: "Siti", Email: "siti@example.com", Role: services.RoleHousekeeper, Active: true}
	db.Create(&hk)
	room := models.Room{HotelID: 1, Number: "101", Status: services.RoomStatusNeedCleaning}
	db.Create(&room)

	router := setupRoomRouter(db, hk)

	w := patchStatus(t, router, room.ID, services.RoomStatusCleaningOccupied)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, services.RoomStatusCleaningOccupied, data["status"])
	assert.Equal(t, float64(hk.ID), data["assigned_to_id"])
}

func TestUpdateRoomStatusForbiddenForRole(t *testing.T) {
	db := setupRoomTestDB(t)

	hk := models.Staff{HotelID: 1, Name: "Siti", Email: "siti@example.com", Role: services.RoleHousekeeper, Active: true}
	db.Create(&hk)
	room := models.Room{HotelID: 1, Number: "101", Status: services.RoomStatusNeedCleaning}
	db.Create(&room)

	router := setupRoomRouter(db, hk)

	w := patchStatus(t, router, room.ID, services.RoomStatusMaintenance)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// State tidak berubah
	var unchanged models.Room
	db.First(&unchanged, room.ID)
	assert.Equal(t, services.RoomStatusNeedCleaning, unchanged.Status)
}

func TestUpdateRoomStatusUnknownRoom(t *testing.T) {
	db := setupRoomTestDB(t)

	reception := models.Staff{HotelID: 1, Name: "Budi", Email: "budi@example.com", Role: services.RoleReception, Active: true}
	db.Create(&reception)

	router := setupRoomRouter(db, reception)

	w := patchStatus(t, router, 9999, services.RoomStatusOccupied)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoomHistoryEndpoint(t *testing.T) {
	db := setupRoomTestDB(t)

	reception := models.Staff{HotelID: 1, Name: "Budi", Email: "budi@example.com", Role: services.RoleReception, Active: true}
	db.Create(&reception)
	room := models.Room{HotelID: 1, Number: "201", Status: services.RoomStatusAvailable}
	db.Create(&room)

	router := setupRoomRouter(db, reception)

	w := patchStatus(t, router, room.ID, services.RoomStatusOccupied)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("GET", "/rooms/"+strconv.Itoa(int(room.ID))+"/history", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	logs := resp["data"].([]interface{})
	assert.Len(t, logs, 1)
	entry := logs[0].(map[string]interface{})
	assert.Equal(t, services.RoomStatusAvailable, entry["previous_status"])
	assert.Equal(t, services.RoomStatusOccupied, entry["new_status"])
}

func TestFindRoomsByStatus(t *testing.T) {
	db := setupRoomTestDB(t)

	reception := models.Staff{HotelID: 1, Name: "Budi", Email: "budi@example.com", Role: services.RoleReception, Active: true}
	db.Create(&reception)
	db.Create(&models.Room{HotelID: 1, Number: "101", Status: services.RoomStatusNeedCleaning})
	db.Create(&models.Room{HotelID: 1, Number: "102", Status: services.RoomStatusAvailable})

	router := setupRoomRouter(db, reception)

	req, _ := http.NewRequest("GET", "/rooms/by-status?status=need_cleaning", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	rooms := resp["data"].([]interface{})
	assert.Len(t, rooms, 1)
}
