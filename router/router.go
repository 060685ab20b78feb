package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/controllers"
	"github.com/yeremiapane/hotel-ops-app/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, limiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares. Limiter harus terpasang sebelum route
	// didaftarkan, kalau tidak handler chain tidak memuatnya.
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(limiter.RateLimit())

	// Inisialisasi controller
	authCtrl := controllers.NewAuthController(db)
	roomCtrl := controllers.NewRoomController(db)
	staffCtrl := controllers.NewStaffController(db)
	guestCtrl := controllers.NewGuestController(db)
	requestCtrl := controllers.NewRequestController(db)
	serviceItemCtrl := controllers.NewServiceItemController(db)
	maintCtrl := controllers.NewMaintenanceController(db)
	assignCtrl := controllers.NewAssignmentController(db)
	notifCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
		public.POST("/login/pin", authCtrl.LoginPIN)
	}

	// -- GUEST (Tanpa Auth) --
	// Scan QR pintu kamar -> session token
	r.GET("/rooms/:room_id/scan", guestCtrl.ScanRoom)
	// Katalog layanan untuk guest portal
	r.GET("/service-items", serviceItemCtrl.GetAllServiceItems)
	// Membuat request (butuh session token hasil scan)
	r.POST("/rooms/:room_id/requests", requestCtrl.CreateRequest)

	// Push subscription (device token)
	r.POST("/push/subscribe", notifCtrl.Subscribe)
	r.POST("/push/unsubscribe", notifCtrl.Unsubscribe)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", authCtrl.GetProfile)
	auth.POST("/logout", authCtrl.Logout)

	// STAFF
	auth.GET("/staff", staffCtrl.GetAllStaff)
	auth.GET("/staff/:staff_id/metrics", staffCtrl.GetStaffMetrics)
	auth.PATCH("/staff/:staff_id/active", middlewares.RequireRole(), staffCtrl.SetStaffActive)

	// ROOMS
	auth.GET("/rooms", roomCtrl.GetAllRooms)
	auth.GET("/rooms/by-status", roomCtrl.FindRoomsByStatus)
	auth.POST("/rooms", middlewares.RequireRole(), roomCtrl.CreateRoom)
	auth.GET("/rooms/:room_id", roomCtrl.GetRoomByID)
	auth.PATCH("/rooms/:room_id/status", roomCtrl.UpdateRoomStatus)
	auth.GET("/rooms/:room_id/history", roomCtrl.GetRoomHistory)
	auth.DELETE("/rooms/:room_id", middlewares.RequireRole(), roomCtrl.DeleteRoom)

	// AUTO-ASSIGNMENT (manager/admin)
	auth.POST("/assignments/auto", middlewares.RequireRole(), assignCtrl.AutoAssign)

	// GUEST REQUESTS (staff)
	auth.GET("/requests", requestCtrl.GetAllRequests)
	auth.PATCH("/requests/:request_id/complete", requestCtrl.CompleteRequest)

	// MAINTENANCE
	auth.POST("/maintenance", maintCtrl.ReportMaintenance)
	auth.GET("/maintenance", maintCtrl.GetAllMaintenance)
	auth.POST("/maintenance/:maint_id/start", middlewares.RequireRole("maintenance"), maintCtrl.StartMaintenance)
	auth.POST("/maintenance/:maint_id/complete", middlewares.RequireRole("maintenance"), maintCtrl.CompleteMaintenance)

	// SERVICE ITEMS (manager/admin)
	auth.GET("/service-items", serviceItemCtrl.GetAllServiceItems)
	auth.POST("/service-items", middlewares.RequireRole(), serviceItemCtrl.CreateServiceItem)
	auth.PATCH("/service-items/:item_id", middlewares.RequireRole(), serviceItemCtrl.UpdateServiceItem)
	auth.DELETE("/service-items/:item_id", middlewares.RequireRole(), serviceItemCtrl.DeleteServiceItem)

	// NOTIFICATIONS
	auth.GET("/notifications", notifCtrl.GetAllNotifications)
	auth.POST("/notifications", notifCtrl.CreateNotification)
	auth.GET("/notifications/:notif_id", notifCtrl.GetNotificationByID)
	auth.DELETE("/notifications/:notif_id", notifCtrl.DeleteNotification)

	// DASHBOARD / REPORTS (manager/admin)
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	auth.GET("/housekeeping/analytics", middlewares.RequireRole(), adminCtrl.GetHousekeepingAnalytics)
	auth.POST("/night-audit/run", middlewares.RequireRole(), adminCtrl.RunNightAudit)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.LiveHandler)
	}

	return r
}
