// Package telegram provides the chat transport: a long-polling Telegram
// Bot API client built on net/http. It adapts bot.Handler replies to
// Telegram messages, inline keyboards and force-reply prompts.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// MaxMessageLength is Telegram's per-message size limit. Longer replies
// are split at the nearest preceding sentence or line boundary.
const MaxMessageLength = 4096

const defaultBaseURL = "https://api.telegram.org/bot"

// sendRate paces outgoing API calls below Telegram's flood limits.
const sendRate = 25 // requests per second

// longPollTimeout is the getUpdates long-poll window in seconds.
const longPollTimeout = 30

// Update is one incoming Telegram update.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// Message is an incoming or sent chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID int64 `json:"id"`
}

// CallbackQuery is a button press on an inline keyboard.
type CallbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data,omitempty"`
	Message *Message `json:"message,omitempty"`
}

// InlineKeyboardMarkup is a grid of callback buttons.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton is one callback button.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// ForceReply asks the client to reply to the prompt message.
type ForceReply struct {
	ForceReply bool `json:"force_reply"`
}

// Bot is a Telegram Bot API client.
type Bot struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Bot.
type Option func(*Bot)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Bot) { b.httpClient = c }
}

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(b *Bot) { b.baseURL = u }
}

// NewBot creates a new Telegram bot with the given token.
func NewBot(token string, opts ...Option) *Bot {
	b := &Bot{
		token:   token,
		baseURL: defaultBaseURL,
		// The client timeout must exceed the long-poll window.
		httpClient: &http.Client{Timeout: (longPollTimeout + 10) * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(sendRate), 1),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Poll starts long-polling for updates and returns a channel of incoming
// updates. The channel is closed when ctx is canceled.
func (b *Bot) Poll(ctx context.Context) <-chan Update {
	ch := make(chan Update)
	go b.pollLoop(ctx, ch)
	return ch
}

func (b *Bot) pollLoop(ctx context.Context, ch chan<- Update) {
	defer close(ch)
	var offset int64

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Back off briefly so a broken network doesn't spin.
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			select {
			case ch <- u:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (b *Bot) getUpdates(ctx context.Context, offset int64) ([]Update, error) {
	body := map[string]any{
		"offset":          offset,
		"timeout":         longPollTimeout,
		"allowed_updates": []string{"message", "callback_query"},
	}
	var result []Update
	if err := b.callAPI(ctx, "getUpdates", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SendMessage sends text to a chat. Text over MaxMessageLength is split
// into multiple messages; the reply markup is attached to the last one.
// Returns the ID of the last sent message.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string, markup any) (int64, error) {
	chunks := SplitMessage(text)

	var lastID int64
	for i, chunk := range chunks {
		body := map[string]any{
			"chat_id": chatID,
			"text":    chunk,
		}
		if markup != nil && i == len(chunks)-1 {
			body["reply_markup"] = markup
		}
		var result Message
		if err := b.callAPI(ctx, "sendMessage", body, &result); err != nil {
			return 0, err
		}
		lastID = result.MessageID
	}
	return lastID, nil
}

// EditMessage replaces the text and markup of an existing message.
// "message is not modified" errors are silently ignored.
func (b *Bot) EditMessage(ctx context.Context, chatID, messageID int64, text string, markup *InlineKeyboardMarkup) error {
	body := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	if markup != nil {
		body["reply_markup"] = markup
	}
	err := b.callAPI(ctx, "editMessageText", body, nil)
	if isNotModifiedError(err) {
		return nil
	}
	return err
}

// AnswerCallback acknowledges a callback query, optionally with a notice.
func (b *Bot) AnswerCallback(ctx context.Context, callbackID, text string) error {
	body := map[string]any{
		"callback_query_id": callbackID,
	}
	if text != "" {
		body["text"] = text
	}
	return b.callAPI(ctx, "answerCallbackQuery", body, nil)
}

// callAPI posts JSON to a Telegram Bot API method and decodes the result.
func (b *Bot) callAPI(ctx context.Context, method string, reqBody any, result any) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}

	url := b.baseURL + b.token + "/" + method

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("telegram: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: read response: %w", err)
	}

	var envelope struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description,omitempty"`
		ErrorCode   int             `json:"error_code,omitempty"`
		Result      json.RawMessage `json:"result,omitempty"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("telegram: decode response: %w (body: %s)", err, string(respBody))
	}

	if !envelope.OK {
		return &apiError{Code: envelope.ErrorCode, Description: envelope.Description}
	}

	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("telegram: decode result: %w", err)
		}
	}
	return nil
}
