package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/hotel-ops-app/config"
	"github.com/yeremiapane/hotel-ops-app/middlewares"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/router"
	"github.com/yeremiapane/hotel-ops-app/services"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database untuk dipakai lintas package
	utils.InitDB(db)

	// Set gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Setup rate limiter (50 requests per second per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Nightly reset: semua room occupied -> dirty_occupied di jam audit
	nightAudit := services.NewNightAuditService(db, config.HotelLocation(), config.NightAuditHour())
	nightAudit.Start()
	defer nightAudit.Stop()

	// Eskalasi guest request yang pending terlalu lama
	requestMonitor := services.NewRequestMonitor(db)
	requestMonitor.Start()
	defer requestMonitor.Stop()

	// Bersihkan token blacklist secara periodik
	utils.StartBlacklistCleaner()

	// Setup router
	r := router.SetupRouter(db, rateLimiter)

	// Set trusted proxies
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
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
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
