package controllers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/models"
	"github.com/yeremiapane/hotel-ops-app/services"
	"github.com/yeremiapane/hotel-ops-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// ErrNoPermission adalah contoh error custom
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// Register staff baru
func (ac *AuthController) Register(c *gin.Context) {
	type request struct {
		HotelID  uint   `json:"hotel_id" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		PIN      string `json:"pin"`
		Role     string `json:"role" binding:"required"` // housekeeper, maintenance, manager, reception, admin
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.PIN != "" && !validPIN(req.PIN) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("pin must be 4-6 digits"))
		return
	}

	// Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	staff := models.Staff{
		HotelID:      req.HotelID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Active:       true,
	}

	if req.PIN != "" {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		staff.PINHash = string(pinHash)
	}

	if err := ac.DB.Create(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New staff registered: %s (role=%s)", staff.Email, staff.Role)

	utils.RespondJSON(c, http.StatusCreated, "Staff registered", gin.H{
		"staff_id": staff.ID,
	})
}

// Login email/password -> return JWT + session cookie
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staff models.Staff
	if err := ac.DB.Where("email = ?", input.Email).First(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if !staff.Active {
		// Pesan generik, jangan bocorkan kenapa login gagal
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	ac.issueSession(c, &staff, "email")
}

// LoginPIN -> login dengan PIN numerik untuk staff operasional.
// Format PIN divalidasi sebelum menyentuh database.
func (ac *AuthController) LoginPIN(c *gin.Context) {
	var input struct {
		PIN     string `json:"pin" binding:"required"`
		HotelID uint   `json:"hotel_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !validPIN(input.PIN) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("pin must be 4-6 digits"))
		return
	}

	var candidates []models.Staff
	if err := ac.DB.
		Where("hotel_id = ? AND active = ? AND pin_hash <> ''", input.HotelID, true).
		Find(&candidates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("login failed"))
		return
	}

	for i := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidates[i].PINHash), []byte(input.PIN)) == nil {
			ac.issueSession(c, &candidates[i], "pin")
			return
		}
	}

	utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
}

// Logout -> blacklist token sampai expiry-nya lewat
func (ac *AuthController) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		if cookie, err := c.Cookie("session"); err == nil {
			token = cookie
		}
	}
	if token != "" {
		utils.BlacklistToken(token)
	}

	c.SetCookie("session", "", -1, "/", "", false, true)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile -> data staff dari JWT
func (ac *AuthController) GetProfile(c *gin.Context) {
	staffIDInterface, exists := c.Get("staff_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("staff id not found in context"))
		return
	}

	staffID, ok := staffIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid staff id type"))
		return
	}

	var staff models.Staff
	if err := ac.DB.First(&staff, staffID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":             staff.ID,
		"hotel_id":       staff.HotelID,
		"name":           staff.Name,
		"email":          staff.Email,
		"role":           staff.Role,
		"assigned_areas": staff.AssignedAreas,
	})
}

func (ac *AuthController) issueSession(c *gin.Context, staff *models.Staff, accessType string) {
	token, err := utils.GenerateToken(staff.ID, staff.HotelID, staff.Role, accessType, staff.Name)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Session cookie 8 jam, mengikuti masa berlaku token
	c.SetCookie("session", token, int(utils.SessionDuration.Seconds()), "/", "", false, true)

	utils.InfoLogger.Printf("Login successful for staff %d (role=%s, via=%s)", staff.ID, staff.Role, accessType)

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Login successful",
		"data": gin.H{
			"token":       token,
			"staff_role":  strings.ToLower(staff.Role),
			"access_type": accessType,
			"name":        staff.Name,
		},
	})
}

// validPIN menerima PIN numerik 4-6 digit.
func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// staffFromContext mengambil record staff milik request yang sudah lolos auth.
func staffFromContext(c *gin.Context, db *gorm.DB) (*models.Staff, error) {
	staffIDInterface, exists := c.Get("staff_id")
	if !exists {
		return nil, errors.New("unauthorized")
	}
	staffID, ok := staffIDInterface.(uint)
	if !ok {
		return nil, errors.New("invalid staff id type")
	}

	var staff models.Staff
	if err := db.First(&staff, staffID).Error; err != nil {
		return nil, errors.New("staff not found")
	}
	if !staff.Active {
		return nil, services.ErrStaffInactive
	}
	return &staff, nil
}
