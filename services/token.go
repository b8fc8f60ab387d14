package services

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"socialhub/config"
	"socialhub/models"
)

// TokenTTL - время жизни токена
const TokenTTL = 12 * time.Hour

type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	if config.AppConfig != nil && config.AppConfig.Auth.JWTSecret != "" {
		return []byte(config.AppConfig.Auth.JWTSecret)
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-jwt-secret")
}

// IssueToken выдает подписанный HS256 токен: subject - id пользователя, claim role
func IssueToken(userID int64, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken проверяет подпись и срок действия, возвращает id и роль
func ParseToken(tokenString string) (int64, models.Role, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return 0, "", ErrUnauthenticated
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, "", ErrUnauthenticated
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, "", ErrUnauthenticated
	}
	return userID, claims.Role, nil
}
