package devserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pennywise/internal/config"
	"pennywise/internal/models"
)

// JWTClaims represents the claims carried by access and refresh tokens.
type JWTClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// timeNow is stubbed in tests to mint expired tokens.
var timeNow = time.Now

func jwtKey() []byte {
	return []byte(config.Get().JWTSecret)
}

func generateToken(user *models.User, tokenType string) (string, error) {
	cfg := config.Get()
	ttl := cfg.AccessTokenTTL
	if tokenType == "refresh" {
		ttl = cfg.RefreshTokenTTL
	}

	now := jwt.NewNumericDate(timeNow())
	claims := &JWTClaims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// iat has second resolution; a jti keeps back-to-back tokens
			// distinct so a refresh always rotates the pair.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(timeNow().Add(ttl)),
			IssuedAt:  now,
			NotBefore: now,
			Issuer:    "pennywise-dev",
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// GenerateAccessToken generates a short-lived access token for a user.
func GenerateAccessToken(user *models.User) (string, error) {
	return generateToken(user, "access")
}

// GenerateRefreshToken generates a long-lived refresh token for a user.
func GenerateRefreshToken(user *models.User) (string, error) {
	return generateToken(user, "refresh")
}

// GenerateAnalyticsToken generates the token the client presents to the
// analytics backend. It is an access-type token with its own type tag so it
// cannot be replayed against the main API.
func GenerateAnalyticsToken(user *models.User) (string, error) {
	return generateToken(user, "analytics")
}

func parseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ValidateRefreshToken parses a refresh token and rejects every other token
// type.
func ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, fmt.Errorf("token is not a refresh token")
	}
	return claims, nil
}

// HashToken returns the SHA-256 hex digest of a token string.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// AuthMiddleware verifies the bearer token and sets the user in the context.
func AuthMiddleware() gin.HandlerFunc {
	return tokenMiddleware("access")
}

// AnalyticsAuthMiddleware guards the analytics routes, which take the
// analytics token instead of the access token.
func AnalyticsAuthMiddleware() gin.HandlerFunc {
	return tokenMiddleware("analytics")
}

func tokenMiddleware(tokenType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := parseToken(parts[1])
		if err != nil || claims.TokenType != tokenType {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
