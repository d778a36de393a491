package telegram

import "time"

const (
	defaultAPIURL  = "https://api.telegram.org"
	defaultTimeout = 15 * time.Second

	// ParseModeHTML enables <b>, <i>, <a href> and friends in message text.
	ParseModeHTML = "HTML"
)

// SendMessageRequest is the payload for Telegram sendMessage API.
type SendMessageRequest struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

// APIResponse is a generic Telegram Bot API response wrapper.
type APIResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}
