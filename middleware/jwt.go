package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenMiddleware validates the bearer access token and stores the
// authenticated user id in the context under "userId".
func AccessTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := parseBearer(c, os.Getenv("JWT_SECRET_KEY"))
		if !ok {
			return
		}
		c.Set("userId", userID)
		c.Next()
	}
}

// RefreshTokenMiddleware validates the bearer refresh token and stores the
// user id and the raw token for the auth handlers.
func RefreshTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, raw, ok := parseBearer(c, os.Getenv("JWT_REFRESH_SECRET_KEY"))
		if !ok {
			return
		}
		c.Set("userId", userID)
		c.Set("refreshToken", raw)
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret string) (uint, string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		return 0, "", false
	}

	raw := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is expired or invalid"})
		return 0, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return 0, "", false
	}
	userIDFloat, ok := claims["userId"].(float64)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid userId in token claims"})
		return 0, "", false
	}
	return uint(userIDFloat), raw, true
}
