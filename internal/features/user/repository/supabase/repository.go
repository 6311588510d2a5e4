package supabase

import (
	"context"
	"net/url"
	"time"

	"estate-notifier-backend/internal/features/user/models"
	"estate-notifier-backend/internal/features/user/repository"
	"estate-notifier-backend/internal/platform/supabase"
)

const usersTable = "app_users"

type userRepository struct {
	client *supabase.Client
}

func NewUserRepository(client *supabase.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetByTelegramID(ctx context.Context, telegramUserID string) (*models.AppUser, error) {
	query := url.Values{}
	query.Set("telegram_user_id", "eq."+telegramUserID)
	query.Set("select", "*")

	var users []models.AppUser
	if err := r.client.Select(ctx, usersTable, query, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, repository.ErrUserNotFound
	}
	return &users[0], nil
}

func (r *userRepository) Create(ctx context.Context, user *models.AppUser) error {
	var created []models.AppUser
	if err := r.client.Insert(ctx, usersTable, user, &created); err != nil {
		return err
	}
	if len(created) > 0 {
		*user = created[0]
	}
	return nil
}

func (r *userRepository) Decide(ctx context.Context, telegramUserID, status string, approvedAt *time.Time) (*models.AppUser, error) {
	// The status=eq.pending filter is the optimistic-concurrency guard: a
	// second click matches zero rows instead of overwriting the first
	// decision.
	query := url.Values{}
	query.Set("telegram_user_id", "eq."+telegramUserID)
	query.Set("status", "eq."+models.StatusPending)

	patch := struct {
		Status     string     `json:"status"`
		ApprovedAt *time.Time `json:"approved_at,omitempty"`
	}{Status: status, ApprovedAt: approvedAt}

	var updated []models.AppUser
	if err := r.client.Update(ctx, usersTable, query, patch, &updated); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, repository.ErrAlreadyDecided
	}
	return &updated[0], nil
}
