package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/giftbridge/platform/internal/authz"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

var jwtKey []byte

func init() {
	if err := godotenv.Load(); err != nil {
		log.Default().Println("No .env file found")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "test_secret_key_minimum_32_characters_long_for_testing_only"
	}

	jwtKey = []byte(secret)
}

func ValidateJWTSecret() error {
	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if len(secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long (current: %d)", len(secret))
	}

	if secret == "test_secret_key_minimum_32_characters_long_for_testing_only" {
		return fmt.Errorf("cannot use default test secret in production")
	}

	return nil
}

// TokenClaims is the decoded principal identity carried by an access token.
type TokenClaims struct {
	UserID    uint
	Role      authz.Role
	CompanyID *uint
}

func GenerateJWT(userID uint, role authz.Role, companyID *uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.Itoa(int(userID)),
		"role": string(role),
		"exp":  time.Now().Add(15 * time.Minute).Unix(),
	}
	if companyID != nil {
		claims["company_id"] = strconv.Itoa(int(*companyID))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ParseJWT(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := mapClaims["sub"].(string)
	id, err := strconv.Atoi(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim")
	}

	roleStr, _ := mapClaims["role"].(string)
	role, err := authz.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}

	claims := &TokenClaims{
		UserID: uint(id),
		Role:   role,
	}

	if companyStr, ok := mapClaims["company_id"].(string); ok && companyStr != "" {
		cid, err := strconv.Atoi(companyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid company claim")
		}
		companyID := uint(cid)
		claims.CompanyID = &companyID
	}

	return claims, nil
}
