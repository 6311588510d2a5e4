package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage_PostsToTokenScopedPath(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer server.Close()

	client := NewClient("123:abc", WithBaseURL(server.URL))

	err := client.SendMessage(context.Background(), SendMessageParams{
		ChatID:    "100200300",
		Text:      "hello",
		ParseMode: "HTML",
		ReplyMarkup: &InlineKeyboardMarkup{
			InlineKeyboard: [][]InlineKeyboardButton{{
				{Text: "✅", CallbackData: "approve_42"},
			}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "100200300", gotBody["chat_id"])
	assert.Equal(t, "HTML", gotBody["parse_mode"])

	markup, ok := gotBody["reply_markup"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, markup["inline_keyboard"])
}

func TestAnswerCallbackQuery_SendsToast(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/answerCallbackQuery", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer server.Close()

	client := NewClient("123:abc", WithBaseURL(server.URL))

	err := client.AnswerCallbackQuery(context.Background(), "cb1", "✅ done")

	require.NoError(t, err)
	assert.Equal(t, "cb1", gotBody["callback_query_id"])
	assert.Equal(t, "✅ done", gotBody["text"])
	assert.Equal(t, false, gotBody["show_alert"])
}

func TestGetMe_ParsesBotIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":{"id":7,"is_bot":true,"username":"estate_notifier_bot"}}`))
	}))
	defer server.Close()

	client := NewClient("123:abc", WithBaseURL(server.URL))

	me, err := client.GetMe(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "estate_notifier_bot", me.Username)
	assert.True(t, me.IsBot)
}

func TestAPIRefusalBecomesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	client := NewClient("123:abc", WithBaseURL(server.URL))

	err := client.SendMessage(context.Background(), SendMessageParams{ChatID: "0", Text: "x"})

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Description, "chat not found")
}

func TestUpdateDecoding(t *testing.T) {
	payload := `{
		"update_id": 1,
		"callback_query": {
			"id": "cb1",
			"from": {"id": 100200300, "first_name": "Admin"},
			"message": {"message_id": 77, "chat": {"id": 100200300}},
			"data": "approve_42"
		}
	}`

	var update Update
	require.NoError(t, json.Unmarshal([]byte(payload), &update))

	require.NotNil(t, update.CallbackQuery)
	assert.Nil(t, update.Message)
	assert.Equal(t, int64(100200300), update.CallbackQuery.From.ID)
	assert.Equal(t, "approve_42", update.CallbackQuery.Data)
	assert.Equal(t, int64(77), update.CallbackQuery.Message.MessageID)
}
