package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-ops-app/middlewares"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/router"
	"github.com/yeremiapane/hotel-ops-app/services"
	"github.com/yeremiapane/hotel-ops-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama:
// 1. Guest scan QR kamar -> session token -> buat request
// 2. Reception login dengan PIN -> checkout kamar (notifikasi housekeeping)
// 3. Manager login -> auto-assign cleaning -> night audit manual
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB()
	r := router.SetupRouter(db, middlewares.NewRateLimiter(50, 1))

	// 1. Guest flow
	sessionToken := scanRoomTest(t, r, 2)
	createRequestTest(t, r, 2, sessionToken)

	// 2. Reception flow
	receptionToken := pinLoginTest(t, r, "1234")
	checkoutRoomTest(t, r, receptionToken, 1)

	// 3. Manager flow
	managerToken := pinLoginTest(t, r, "9876")
	autoAssignTest(t, r, managerToken)
	nightAuditTest(t, r, managerToken, db)
}

// setupTestDB -> migrasi model di SQLite in-memory + seed data
func setupTestDB() *gorm.DB {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Hotel{},
		&models.Staff{},
		&models.Room{},
		&models.RoomStatusLog{},
		&models.Guest{},
		&models.ServiceItem{},
		&models.GuestRequest{},
		&models.MaintenanceRecord{},
		&models.Notification{},
		&models.PushSubscription{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	hotel := models.Hotel{Name: "Hotel Integrasi", Timezone: "UTC", SubscriptionStatus: models.SubscriptionActive}
	db.Create(&hotel)

	// Rooms: ID 1 occupied (untuk checkout), ID 2 need_cleaning (untuk guest + assignment)
	db.Create(&models.Room{HotelID: hotel.ID, Number: "101", Floor: 1, Status: services.RoomStatusOccupied})
	db.Create(&models.Room{HotelID: hotel.ID, Number: "102", Floor: 1, Status: services.RoomStatusNeedCleaning})

	db.Create(&models.ServiceItem{HotelID: hotel.ID, Name: "Extra towels", Available: true})

	// Seed staff langsung supaya tidak kena strict limiter login/register
	seedStaffWithPIN(db, hotel.ID, "Rina", "rina@example.com", services.RoleReception, "1234")
	seedStaffWithPIN(db, hotel.ID, "Dewi", "dewi@example.com", services.RoleManager, "9876")
	seedStaffWithPIN(db, hotel.ID, "Siti", "siti@example.com", services.RoleHousekeeper, "")

	return db
}

func seedStaffWithPIN(db *gorm.DB, hotelID uint, name, email, role, pin string) {
	staff := models.Staff{
		HotelID: hotelID,
		Name:    name,
		Email:   email,
		Role:    role,
		Active:  true,
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.DefaultCost)
	staff.PasswordHash = string(hashed)
	if pin != "" {
		pinHash, _ := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		staff.PINHash = string(pinHash)
	}
	db.Create(&staff)
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func scanRoomTest(t *testing.T, r *gin.Engine, roomID uint) string {
	w := doJSON(t, r, "GET", "/rooms/"+strconv.Itoa(int(roomID))+"/scan", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	token, _ := data["session_token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func createRequestTest(t *testing.T, r *gin.Engine, roomID uint, sessionToken string) {
	raw, _ := json.Marshal(map[string]interface{}{
		"service_item_id": 1,
		"quantity":        3,
	})
	req, err := http.NewRequest("POST", "/rooms/"+strconv.Itoa(int(roomID))+"/requests", bytes.NewBuffer(raw))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Session", sessionToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.NotEmpty(t, data["tracking_code"])
}

func pinLoginTest(t *testing.T, r *gin.Engine, pin string) string {
	w := doJSON(t, r, "POST", "/login/pin", "", map[string]interface{}{
		"pin":      pin,
		"hotel_id": 1,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func checkoutRoomTest(t *testing.T, r *gin.Engine, token string, roomID uint) {
	w := doJSON(t, r, "PATCH", "/admin/rooms/"+strconv.Itoa(int(roomID))+"/status", token,
		map[string]interface{}{"status": services.RoomStatusCheckout})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, services.RoomStatusCheckout, data["status"])
	assert.Equal(t, true, data["needs_cleaning"])
}

func autoAssignTest(t *testing.T, r *gin.Engine, token string) {
	w := doJSON(t, r, "POST", "/admin/assignments/auto", token, map[string]interface{}{
		"date": "2025-06-01",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	// Room 101 (checkout) + 102 (need_cleaning) ke satu-satunya housekeeper
	assert.Equal(t, float64(2), result["assignmentsCreated"])
	assignments := result["asignaciones"].([]interface{})
	assert.Len(t, assignments, 2)
}

func nightAuditTest(t *testing.T, r *gin.Engine, token string, db *gorm.DB) {
	// Tambahkan satu room occupied supaya audit punya kerjaan
	db.Create(&models.Room{HotelID: 1, Number: "103", Floor: 1, Status: services.RoomStatusOccupied})

	w := doJSON(t, r, "POST", "/admin/night-audit/run", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, float64(1), data["total_hotels"])
	assert.Equal(t, float64(1), data["total_rooms_updated"])

	var room models.Room
	db.Where("number = ?", "103").First(&room)
	assert.Equal(t, services.RoomStatusDirtyOccupied, room.Status)
}
