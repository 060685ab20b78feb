package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/utils"
)

func setupStatusTestDB(t *testing.T) *gorm.DB {
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

	hotel := models.Hotel{Name: "Hotel Uji", Timezone: "UTC", SubscriptionStatus: models.SubscriptionActive}
	db.Create(&hotel)
	return db
}

func seedStaff(db *gorm.DB, hotelID uint, role string, active bool) models.Staff {
	staff := models.Staff{
		HotelID: hotelID,
		Name:    role + "-1",
		Email:   role + "1@example.com",
		Role:    role,
		Active:  active,
	}
	db.Create(&staff)
	return staff
}

func seedRoom(db *gorm.DB, hotelID uint, number, status string) models.Room {
	room := models.Room{HotelID: hotelID, Number: number, Floor: 1, Status: status}
	db.Create(&room)
	return room
}

func TestHousekeeperCleaningFlow(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	hk := seedStaff(db, 1, RoleHousekeeper, true)
	room := seedRoom(db, 1, "101", RoomStatusNeedCleaning)

	// Mulai cleaning -> timer terbuka, room ter-assign
	updated, err := svc.ApplyTransition(room.ID, RoomStatusCleaningOccupied, &hk, "")
	assert.NoError(t, err)
	assert.Equal(t, RoomStatusCleaningOccupied, updated.Status)
	assert.NotNil(t, updated.AssignedToID)
	assert.Equal(t, hk.ID, *updated.AssignedToID)
	assert.NotNil(t, updated.CleaningStartedAt)
	assert.NotNil(t, updated.LastStatusChange)

	var logs []models.RoomStatusLog
	db.Where("room_id = ?", room.ID).Find(&logs)
	assert.Len(t, logs, 1)
	assert.Equal(t, RoomStatusNeedCleaning, logs[0].PreviousStatus)
	assert.Equal(t, RoomStatusCleaningOccupied, logs[0].NewStatus)

	// Mundurkan start time supaya elapsed terukur
	startedAt := time.Now().Add(-30 * time.Minute)
	db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("cleaning_started_at", startedAt)

	// Selesai -> timer tertutup, metrics ter-update
	updated, err = svc.ApplyTransition(room.ID, RoomStatusCleanOccupied, &hk, "done")
	assert.NoError(t, err)
	assert.Equal(t, RoomStatusCleanOccupied, updated.Status)
	assert.Nil(t, updated.CleaningStartedAt)
	assert.NotNil(t, updated.LastCleanedAt)

	var cleaner models.Staff
	db.First(&cleaner, hk.ID)
	assert.Equal(t, 1, cleaner.CleaningCount)
	assert.InDelta(t, 30, cleaner.TotalCleaningMinutes, 1)
	assert.InDelta(t, 30, cleaner.AvgCleaningMinutes, 1)

	db.Where("room_id = ?", room.ID).Find(&logs)
	assert.Len(t, logs, 2)
}

func TestConcurrentTransitionConflict(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	hk := seedStaff(db, 1, RoleHousekeeper, true)
	room := seedRoom(db, 1, "101", RoomStatusNeedCleaning)

	// Tulis status lain lewat koneksi transaksi yang sama tepat sebelum
	// UPDATE berjalan -> meniru penulis kedua yang menang duluan
	interfered := false
	err := db.Callback().Update().Before("gorm:update").Register("status_interferer", func(d *gorm.DB) {
		if interfered || d.Statement.Table != "rooms" {
			return
		}
		interfered = true
		d.Statement.ConnPool.ExecContext(d.Statement.Context,
			"UPDATE rooms SET status = ? WHERE id = ?", RoomStatusInHouse, room.ID)
	})
	assert.NoError(t, err)

	_, err = svc.ApplyTransition(room.ID, RoomStatusCleaningOccupied, &hk, "")
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.True(t, interfered)

	// Transaksi di-rollback total: tidak ada history, timer tidak terbuka
	var logCount int64
	db.Model(&models.RoomStatusLog{}).Count(&logCount)
	assert.Equal(t, int64(0), logCount)

	var after models.Room
	db.First(&after, room.ID)
	assert.NotEqual(t, RoomStatusCleaningOccupied, after.Status)
	assert.Nil(t, after.CleaningStartedAt)
	assert.Nil(t, after.AssignedToID)
}

func TestManagerClosingCreditsAssignedHousekeeper(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	hk := seedStaff(db, 1, RoleHousekeeper, true)
	mgr := seedStaff(db, 1, RoleManager, true)
	room := seedRoom(db, 1, "106", RoomStatusNeedCleaning)

	_, err := svc.ApplyTransition(room.ID, RoomStatusCleaningCheckout, &hk, "")
	assert.NoError(t, err)

	db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("cleaning_started_at", time.Now().Add(-20*time.Minute))

	// Manager menutup ke inspection; menit cleaning tetap milik housekeeper
	_, err = svc.ApplyTransition(room.ID, RoomStatusInspection, &mgr, "")
	assert.NoError(t, err)

	var cleaner, manager models.Staff
	db.First(&cleaner, hk.ID)
	db.First(&manager, mgr.ID)
	assert.Equal(t, 1, cleaner.CleaningCount)
	assert.InDelta(t, 20, cleaner.TotalCleaningMinutes, 1)
	assert.Equal(t, 0, manager.CleaningCount)
	assert.Zero(t, manager.TotalCleaningMinutes)
}

func TestTransitionRejectedForRole(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	hk := seedStaff(db, 1, RoleHousekeeper, true)
	room := seedRoom(db, 1, "102", RoomStatusNeedCleaning)

	// Housekeeper tidak boleh memindahkan room ke maintenance
	_, err := svc.ApplyTransition(room.ID, RoomStatusMaintenance, &hk, "")
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)

	// State tidak berubah, tidak ada history entry
	var unchanged models.Room
	db.First(&unchanged, room.ID)
	assert.Equal(t, RoomStatusNeedCleaning, unchanged.Status)

	var count int64
	db.Model(&models.RoomStatusLog{}).Where("room_id = ?", room.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestTransitionRejectedForInactiveStaff(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	hk := seedStaff(db, 1, RoleHousekeeper, false)
	room := seedRoom(db, 1, "103", RoomStatusNeedCleaning)

	_, err := svc.ApplyTransition(room.ID, RoomStatusCleaningOccupied, &hk, "")
	assert.ErrorIs(t, err, ErrStaffInactive)
}

func TestTransitionRejectedForUnknownStatus(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	reception := seedStaff(db, 1, RoleReception, true)
	room := seedRoom(db, 1, "104", RoomStatusAvailable)

	_, err := svc.ApplyTransition(room.ID, "teleported", &reception, "")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTransitionRejectedForOtherHotel(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	other := models.Hotel{Name: "Hotel Lain", SubscriptionStatus: models.SubscriptionActive}
	db.Create(&other)

	reception := seedStaff(db, other.ID, RoleReception, true)
	room := seedRoom(db, 1, "105", RoomStatusAvailable)

	_, err := svc.ApplyTransition(room.ID, RoomStatusOccupied, &reception, "")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCheckoutStampsAndNotifies(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	reception := seedStaff(db, 1, RoleReception, true)
	room := seedRoom(db, 1, "201", RoomStatusOccupied)

	updated, err := svc.ApplyTransition(room.ID, RoomStatusCheckout, &reception, "")
	assert.NoError(t, err)
	assert.Equal(t, RoomStatusCheckout, updated.Status)
	assert.NotNil(t, updated.CheckoutAt)
	assert.True(t, updated.NeedsCleaning)
	assert.Equal(t, models.PriorityNormal, updated.PriorityLevel)

	var notif models.Notification
	err = db.Where("topic = ?", "housekeeping").First(&notif).Error
	assert.NoError(t, err)
	assert.Equal(t, models.PriorityNormal, notif.Priority)
}

func TestInHouseSetsHighPriority(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	reception := seedStaff(db, 1, RoleReception, true)
	room := seedRoom(db, 1, "202", RoomStatusOccupied)

	updated, err := svc.ApplyTransition(room.ID, RoomStatusInHouse, &reception, "")
	assert.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, updated.PriorityLevel)

	var notif models.Notification
	err = db.Where("topic = ? AND priority = ?", "housekeeping", models.PriorityHigh).First(&notif).Error
	assert.NoError(t, err)
}

func TestRoomNotFound(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	reception := seedStaff(db, 1, RoleReception, true)
	_, err := svc.ApplyTransition(9999, RoomStatusOccupied, &reception, "")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestHistoryOrder(t *testing.T) {
	db := setupStatusTestDB(t)
	svc := NewRoomStatusService(db)

	reception := seedStaff(db, 1, RoleReception, true)
	room := seedRoom(db, 1, "301", RoomStatusAvailable)

	_, err := svc.ApplyTransition(room.ID, RoomStatusOccupied, &reception, "check-in")
	assert.NoError(t, err)
	_, err = svc.ApplyTransition(room.ID, RoomStatusCheckout, &reception, "check-out")
	assert.NoError(t, err)

	logs, err := svc.History(room.ID, 10)
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
	// Terbaru dulu
	assert.Equal(t, RoomStatusCheckout, logs[0].NewStatus)
	assert.Equal(t, RoomStatusOccupied, logs[1].NewStatus)
}
