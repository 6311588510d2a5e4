package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

const initDataUserKey = "telegram_user"

// TelegramInitData optionally authenticates mini-app requests. Registration
// itself is open, but when the client presents an init_data header and the
// bot token is configured, the header is validated and the caller's Telegram
// identity is taken from it instead of the request body.
func TelegramInitData(botToken string, ttlSeconds int) gin.HandlerFunc {
	expIn := time.Duration(ttlSeconds) * time.Second

	return func(c *gin.Context) {
		raw := c.GetHeader("init_data")
		if raw == "" || botToken == "" {
			c.Next()
			return
		}

		if err := initdata.Validate(raw, botToken, expIn); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": fmt.Sprintf("Invalid init data: %v", err)})
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to parse init data: %v", err)})
			return
		}

		c.Set(initDataUserKey, parsed.User)
		c.Next()
	}
}

// InitDataUser returns the validated mini-app identity, if any.
func InitDataUser(c *gin.Context) (initdata.User, bool) {
	v, exists := c.Get(initDataUserKey)
	if !exists {
		return initdata.User{}, false
	}
	user, ok := v.(initdata.User)
	return user, ok
}
