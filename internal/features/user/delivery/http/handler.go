package http

import (
	"net/http"
	"strconv"

	"estate-notifier-backend/internal/common/config"
	"estate-notifier-backend/internal/common/middleware"
	"estate-notifier-backend/internal/features/user/models"
	"estate-notifier-backend/internal/features/user/service"
	"estate-notifier-backend/internal/platform/telegram"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
	cfg     *config.Config
}

func NewUserHandler(service service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		service: service,
		cfg:     cfg,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth",
		middleware.TelegramInitData(h.cfg.Telegram.BotToken, h.cfg.Telegram.InitDataTTL),
		h.Register)
	router.POST("/bot-webhook", h.Webhook)
}

// Register handles mini-app registration. Open by contract (the mini-app
// cannot hold a secret), with optional init-data identity when the client
// presents one.
func (h *UserHandler) Register(c *gin.Context) {
	if !h.cfg.HasSupabase() || !h.cfg.HasTelegram() {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		return
	}

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// A validated init_data header outranks whatever the body claims.
	if tgUser, ok := middleware.InitDataUser(c); ok {
		req.TelegramUserID = models.TelegramID(strconv.FormatInt(tgUser.ID, 10))
		req.Username = tgUser.Username
		req.FirstName = tgUser.FirstName
		req.LastName = tgUser.LastName
	}

	if req.TelegramUserID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing telegram_user_id"})
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": result.Status})
}

// Webhook receives bot updates. Telegram retries any non-2xx delivery, so
// the transport answer is always 200; the business outcome travels in the
// ok/action body fields.
func (h *UserHandler) Webhook(c *gin.Context) {
	if !h.cfg.HasSupabase() || !h.cfg.HasTelegram() {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": "Server configuration error"})
		return
	}

	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	result := h.service.HandleUpdate(c.Request.Context(), update)
	c.JSON(http.StatusOK, result)
}
