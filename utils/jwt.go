package utils

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

// SessionDuration mengikuti shift hotel: token & cookie berlaku 8 jam.
const SessionDuration = 8 * time.Hour

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Gunakan default secret untuk development
		log.Printf("Warning: JWT_SECRET not found in environment, using default secret")
		secret = "TestSecretKeyHOTEL1945"
	}

	JWTSecret = []byte(secret)
}

type CustomClaims struct {
	StaffID    uint   `json:"staff_id"`
	HotelID    uint   `json:"hotel_id"`
	Role       string `json:"role"`
	AccessType string `json:"access_type"` // "pin" atau "email"
	Name       string `json:"name"`
	jwt.RegisteredClaims
}

func GenerateToken(staffID, hotelID uint, role, accessType, name string) (string, error) {
	claims := &CustomClaims{
		StaffID:    staffID,
		HotelID:    hotelID,
		Role:       role,
		AccessType: accessType,
		Name:       name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "HotelOpsApp",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JWTSecret)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	if IsTokenBlacklisted(tokenString) {
		return nil, errors.New("invalid or expired token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
