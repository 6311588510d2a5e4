package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"estate-notifier-backend/internal/common/logger"
	"estate-notifier-backend/internal/common/metrics"
	"estate-notifier-backend/internal/features/user/models"
	"estate-notifier-backend/internal/features/user/repository"
	"estate-notifier-backend/internal/platform/telegram"
)

// TelegramGateway is the slice of the bot API the user flows need.
type TelegramGateway interface {
	SendMessage(ctx context.Context, params telegram.SendMessageParams) error
	EditMessageText(ctx context.Context, params telegram.EditMessageTextParams) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string) error
}

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error)
	HandleUpdate(ctx context.Context, update telegram.Update) models.WebhookResult
}

type userService struct {
	repo        repository.UserRepository
	bot         TelegramGateway
	adminChatID string
}

func NewUserService(repo repository.UserRepository, bot TelegramGateway, adminChatID string) UserService {
	return &userService{
		repo:        repo,
		bot:         bot,
		adminChatID: adminChatID,
	}
}

// Register looks up the caller and, for first contact, stores a pending user
// and pings the admin with an approve/reject keyboard. Repeated calls are
// idempotent reads: the stored status comes back unchanged and no second
// notification is sent.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error) {
	uid := string(req.TelegramUserID)

	existing, err := s.repo.GetByTelegramID(ctx, uid)
	if err == nil {
		metrics.IncRegistration("existing")
		return &models.RegisterResult{Status: existing.Status}, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		metrics.IncRegistration("failed")
		return nil, err
	}

	user := &models.AppUser{
		TelegramUserID: uid,
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Status:         models.StatusPending,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		metrics.IncRegistration("failed")
		return nil, err
	}
	metrics.IncRegistration("created")

	// The user row is already committed; a failed admin ping degrades the
	// registration to a logged partial success instead of failing it.
	result := &models.RegisterResult{Status: models.StatusPending, Created: true, AdminNotified: true}
	if err := s.notifyAdmin(ctx, user); err != nil {
		result.AdminNotified = false
		logger.Warn().
			Err(err).
			Str("telegram_user_id", uid).
			Msg("User created but admin notification failed")
	}
	return result, nil
}

func (s *userService) notifyAdmin(ctx context.Context, user *models.AppUser) error {
	return s.bot.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:      s.adminChatID,
		Text:        accessRequestText(user),
		ParseMode:   "HTML",
		ReplyMarkup: approvalKeyboard(user.TelegramUserID),
	})
}

// HandleUpdate dispatches one inbound bot update by payload shape: an admin
// decision callback, a /start greeting, or an ignored no-op.
func (s *userService) HandleUpdate(ctx context.Context, update telegram.Update) models.WebhookResult {
	switch {
	case update.CallbackQuery != nil:
		return s.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text == "/start":
		return s.handleStart(ctx, update.Message)
	default:
		return models.WebhookResult{OK: true}
	}
}

func (s *userService) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) models.WebhookResult {
	fromID := strconv.FormatInt(cb.From.ID, 10)
	if fromID != s.adminChatID {
		s.answer(ctx, cb.ID, msgAdminOnly)
		return models.WebhookResult{OK: true}
	}

	action := models.ParseAction(cb.Data)
	if action.Kind == models.ActionUnknown {
		return models.WebhookResult{OK: true}
	}

	var approvedAt *time.Time
	if action.Kind == models.ActionApprove {
		now := time.Now().UTC()
		approvedAt = &now
	}

	user, err := s.repo.Decide(ctx, action.UserID, action.Status(), approvedAt)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyDecided) {
			metrics.IncDecision("stale")
			s.answer(ctx, cb.ID, msgAlreadyDecided)
			return models.WebhookResult{OK: true}
		}
		metrics.IncDecision("failed")
		logger.Error().
			Err(err).
			Str("telegram_user_id", action.UserID).
			Msg("Status transition failed")
		s.answer(ctx, cb.ID, msgDatabaseError)
		return models.WebhookResult{OK: false}
	}
	metrics.IncDecision(action.Status())

	s.answer(ctx, cb.ID, decisionAck(action))

	// Rewrite the original admin message so the keyboard disappears and the
	// final disposition stays visible.
	if cb.Message != nil {
		err := s.bot.EditMessageText(ctx, telegram.EditMessageTextParams{
			ChatID:    strconv.FormatInt(cb.Message.Chat.ID, 10),
			MessageID: cb.Message.MessageID,
			Text:      decisionText(action, user),
			ParseMode: "HTML",
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to edit admin message")
		}
	}

	return models.WebhookResult{OK: true, Action: action.Status()}
}

func (s *userService) handleStart(ctx context.Context, msg *telegram.Message) models.WebhookResult {
	err := s.bot.SendMessage(ctx, telegram.SendMessageParams{
		ChatID:    strconv.FormatInt(msg.Chat.ID, 10),
		Text:      msgWelcome,
		ParseMode: "HTML",
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to send welcome message")
		return models.WebhookResult{OK: false}
	}
	return models.WebhookResult{OK: true}
}

func (s *userService) answer(ctx context.Context, callbackID, text string) {
	if err := s.bot.AnswerCallbackQuery(ctx, callbackID, text); err != nil {
		logger.Warn().Err(err).Msg("Failed to answer callback query")
	}
}
