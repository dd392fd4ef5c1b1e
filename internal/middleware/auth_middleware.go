package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/OPpuolitaival/recipe-example-app/config"
	"github.com/OPpuolitaival/recipe-example-app/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// CachedAdmin is the admin session data kept in the Redis cache so the
// user row is not reloaded on every admin request.
type CachedAdmin struct {
	UserID uint   `json:"user_id"`
	Login  string `json:"login"`
}

const adminCacheTTL = 10 * time.Minute

// AuthMiddleware guards the /admin surface. The session token is read
// from the auth cookie or a bearer header, validated, and the admin
// account is resolved through the cache with a database fallback.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				handleAuthError(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handleAuthError(c, "Invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Invalid token claims")
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			handleAuthError(c, "Invalid user ID format in token")
			return
		}
		userID := uint(userIDFloat)

		cacheKey := fmt.Sprintf("admin:%d:session", userID)
		if config.RDB != nil {
			cached, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var admin CachedAdmin
				if json.Unmarshal([]byte(cached), &admin) == nil {
					setContextAndProceed(c, &admin)
					return
				}
				slog.Warn("Failed to unmarshal cached admin session", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("Redis GET failed for admin session", "error", err, "user_id", userID)
			}
		}

		var dbUser models.User
		if err := config.DB.First(&dbUser, userID).Error; err != nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "User from token not found")
			return
		}

		admin := CachedAdmin{UserID: dbUser.ID, Login: dbUser.Login}
		if config.RDB != nil {
			if jsonData, err := json.Marshal(admin); err == nil {
				if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, adminCacheTTL).Err(); err != nil {
					slog.Error("Failed to cache admin session", "error", err, "user_id", userID)
				}
			}
		}

		setContextAndProceed(c, &admin)
	}
}

func setContextAndProceed(c *gin.Context, admin *CachedAdmin) {
	c.Set("user_id", admin.UserID)
	c.Set("login", admin.Login)
	c.Next()
}

func handleAuthError(c *gin.Context, message string) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, "/login")
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	}
	c.Abort()
}
