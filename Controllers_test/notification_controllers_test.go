package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-ops-app/controllers"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/utils"
)

func setupPushRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.PushSubscription{}, &models.Notification{}, &models.Staff{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	notifCtrl := controllers.NewNotificationController(db)
	router.POST("/push/subscribe", notifCtrl.Subscribe)
	router.POST("/push/unsubscribe", notifCtrl.Unsubscribe)
	return router, db
}

func TestPushSubscribeAndUnsubscribe(t *testing.T) {
	router, db := setupPushRouter(t)

	w := postJSON(t, router, "/push/subscribe", map[string]interface{}{
		"token": "device-token-abc",
		"topic": "housekeeping",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Subscribe kedua dengan token+topic sama tidak menduplikasi
	w = postJSON(t, router, "/push/subscribe", map[string]interface{}{
		"token": "device-token-abc",
		"topic": "housekeeping",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	db.Model(&models.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(1), count)

	w = postJSON(t, router, "/push/unsubscribe", map[string]interface{}{
		"token": "device-token-abc",
		"topic": "housekeeping",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	db.Model(&models.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPushSubscribeRejectsInvalidTopic(t *testing.T) {
	router, db := setupPushRouter(t)

	for _, topic := range []string{"bad topic", "topic!", "a/b", ""} {
		w := postJSON(t, router, "/push/subscribe", map[string]interface{}{
			"token": "device-token-abc",
			"topic": topic,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "topic %q should be rejected", topic)
	}

	var count int64
	db.Model(&models.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
