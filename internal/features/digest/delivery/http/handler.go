package http

import (
	"net/http"
	"time"

	"estate-notifier-backend/internal/common/config"
	"estate-notifier-backend/internal/common/middleware"
	"estate-notifier-backend/internal/features/digest/service"

	"github.com/gin-gonic/gin"
)

type DigestHandler struct {
	service service.DigestService
	cfg     *config.Config
}

func NewDigestHandler(service service.DigestService, cfg *config.Config) *DigestHandler {
	return &DigestHandler{
		service: service,
		cfg:     cfg,
	}
}

func (h *DigestHandler) RegisterRoutes(router *gin.RouterGroup) {
	// The scheduler calls with GET, manual triggers may POST. The secret
	// gate runs before anything else.
	gate := middleware.CronSecret(h.cfg.Notify.CronSecret)
	router.GET("/notify", gate, h.Notify)
	router.POST("/notify", gate, h.Notify)
}

func (h *DigestHandler) Notify(c *gin.Context) {
	if !h.cfg.HasSupabase() {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Missing Supabase credentials"})
		return
	}
	if !h.cfg.HasTelegram() {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Missing Telegram credentials"})
		return
	}

	report, err := h.service.Run(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !report.Sent {
		c.JSON(http.StatusOK, gin.H{
			"message":       "No updates to notify",
			"checked_since": report.CheckedSince.Format(time.RFC3339),
			"new":           0,
			"drops":         0,
			"ups":           0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"checked_since": report.CheckedSince.Format(time.RFC3339),
		"new":           report.New,
		"drops":         report.Drops,
		"ups":           report.Ups,
	})
}
