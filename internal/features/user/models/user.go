package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Access lifecycle of a registered mini-app user. Transitions go from
// pending to exactly one of approved or rejected, and only the admin
// identity may trigger them.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AppUser mirrors a row of the app_users table. The table is keyed by the
// Telegram user ID, stored as text.
type AppUser struct {
	TelegramUserID string     `json:"telegram_user_id"`
	Username       string     `json:"username,omitempty"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	Status         string     `json:"status"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
}

// TelegramID tolerates both string and numeric JSON encodings, since the
// mini-app frontend sends whatever Telegram.WebApp handed it.
type TelegramID string

func (id *TelegramID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = TelegramID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = TelegramID(n.String())
		return nil
	}
	return fmt.Errorf("telegram_user_id must be a string or a number")
}

type RegisterRequest struct {
	TelegramUserID TelegramID `json:"telegram_user_id"`
	Username       string     `json:"username"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
}

// RegisterResult separates the primary outcome (the stored status) from the
// side-effect outcome (whether the admin ping went out), so partial success
// is visible to callers.
type RegisterResult struct {
	Status        string
	Created       bool
	AdminNotified bool
}

// WebhookResult is the business outcome of processing one bot update. The
// HTTP layer always acknowledges Telegram with a 200 regardless; OK carries
// the actual result in the response body.
type WebhookResult struct {
	OK     bool   `json:"ok"`
	Action string `json:"action,omitempty"`
}
