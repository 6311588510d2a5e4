package service

import (
	"fmt"

	"estate-notifier-backend/internal/features/user/models"
	"estate-notifier-backend/internal/platform/telegram"
)

// User-facing texts are Greek, matching the bot's audience.
const (
	msgAdminOnly      = "⛔ Μόνο ο admin μπορεί να κάνει αυτή την ενέργεια."
	msgDatabaseError  = "❌ Σφάλμα βάσης δεδομένων"
	msgAlreadyDecided = "ℹ️ Το αίτημα έχει ήδη εξεταστεί."
	msgWelcome        = "👋 Καλωσήρθες στο <b>Private Adds Attica</b>!\n\nΆνοιξε τις αγγελίες πατώντας το κουμπί <b>🏠 Αγγελίες</b> στο μενού."
)

func accessRequestText(user *models.AppUser) string {
	displayName := user.FirstName
	if displayName != "" && user.LastName != "" {
		displayName += " " + user.LastName
	}
	if displayName == "" {
		displayName = "Άγνωστο"
	}
	userTag := "χωρίς username"
	if user.Username != "" {
		userTag = "@" + user.Username
	}

	return fmt.Sprintf(
		"🆕 <b>Νέο αίτημα πρόσβασης</b>\n\n"+
			"👤 <b>%s</b> (%s)\n"+
			"🆔 ID: <code>%s</code>\n\n"+
			"Θέλεις να εγκρίνεις αυτόν τον χρήστη;",
		displayName, userTag, user.TelegramUserID,
	)
}

func approvalKeyboard(telegramUserID string) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{{
			{Text: "✅ Έγκριση", CallbackData: "approve_" + telegramUserID},
			{Text: "❌ Απόρριψη", CallbackData: "reject_" + telegramUserID},
		}},
	}
}

func decisionAck(action models.Action) string {
	if action.Kind == models.ActionApprove {
		return "✅ Εγκρίθηκε!"
	}
	return "❌ Απορρίφθηκε!"
}

func decisionText(action models.Action, user *models.AppUser) string {
	name := user.FirstName
	if name == "" {
		name = "Χρήστης"
	}
	tag := "ID: " + user.TelegramUserID
	if user.Username != "" {
		tag = "@" + user.Username
	}

	if action.Kind == models.ActionApprove {
		return fmt.Sprintf("✅ <b>Εγκρίθηκε:</b> %s (%s)", name, tag)
	}
	return fmt.Sprintf("❌ <b>Απορρίφθηκε:</b> %s (%s)", name, tag)
}
