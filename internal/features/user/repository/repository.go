package repository

import (
	"context"
	"errors"
	"time"

	"estate-notifier-backend/internal/features/user/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyDecided means the status transition precondition failed:
	// the user is no longer pending, so a stale button click must not
	// overwrite the earlier decision.
	ErrAlreadyDecided = errors.New("user already decided")
)

type UserRepository interface {
	GetByTelegramID(ctx context.Context, telegramUserID string) (*models.AppUser, error)
	Create(ctx context.Context, user *models.AppUser) error
	// Decide transitions a pending user to the given status. approvedAt is
	// set only for approvals. Returns the mutated row.
	Decide(ctx context.Context, telegramUserID, status string, approvedAt *time.Time) (*models.AppUser, error)
}
