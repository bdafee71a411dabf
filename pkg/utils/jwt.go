package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// read lazily so a .env loaded at startup is honored
func jwtKey() []byte { return []byte(os.Getenv("JWT_SECRET")) }

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func CreateAdminToken() (string, error) {
	claims := &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 12)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})

	if err != nil || !token.Valid {
		return nil, err
	}

	return claims, nil
}
