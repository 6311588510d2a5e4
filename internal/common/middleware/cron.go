package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CronSecret gates scheduler-invoked endpoints. The trigger may present the
// secret either as a bearer token (Vercel-style cron invocation) or as a
// ?key= query parameter (manual trigger). An empty secret disables the gate.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		if token, ok := bearerToken(c.GetHeader("Authorization")); ok && equal(token, secret) {
			c.Next()
			return
		}
		if equal(c.Query("key"), secret) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
