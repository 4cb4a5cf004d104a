package telegram

import (
	"context"
	"log/slog"

	"github.com/avolkov/rigcat"
	"github.com/avolkov/rigcat/bot"
)

// Runner connects a Bot to a bot.Handler: it consumes incoming updates,
// routes them to the handler and delivers the replies.
type Runner struct {
	bot     *Bot
	handler *bot.Handler
	logger  *slog.Logger

	// pending maps a chat to the action awaiting its next free-text
	// message. Touched only from the Run goroutine.
	pending map[int64]bot.Action
}

// NewRunner creates a runner. A nil logger falls back to slog.Default().
func NewRunner(b *Bot, h *bot.Handler, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		bot:     b,
		handler: h,
		logger:  logger,
		pending: make(map[int64]bot.Action),
	}
}

// Run consumes updates until ctx is canceled. Updates are handled
// sequentially so catalog writes never race.
func (r *Runner) Run(ctx context.Context) error {
	for u := range r.bot.Poll(ctx) {
		switch {
		case u.CallbackQuery != nil:
			r.handleCallback(ctx, u.CallbackQuery)
		case u.Message != nil:
			r.handleMessage(ctx, u.Message)
		}
	}
	return ctx.Err()
}

// handleCallback handles a pressed menu button. The reply replaces the
// menu message in place when it fits in a single message.
func (r *Runner) handleCallback(ctx context.Context, q *CallbackQuery) {
	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID
	action := bot.Action(q.Data)

	reply, err := r.handler.HandleAction(ctx, action)
	if err != nil {
		r.logger.Error("action failed", "action", action, "error", err)
		if ackErr := r.bot.AnswerCallback(ctx, q.ID, rigcat.ErrorMessage(err)); ackErr != nil {
			r.logger.Error("callback answer failed", "error", ackErr)
		}
		return
	}

	if reply.Await != "" {
		r.pending[chatID] = reply.Await
		if _, err := r.bot.SendMessage(ctx, chatID, reply.Text, &ForceReply{ForceReply: true}); err != nil {
			r.logger.Error("prompt send failed", "chat_id", chatID, "error", err)
		}
	} else if err := r.showReply(ctx, chatID, q.Message.MessageID, reply); err != nil {
		r.logger.Error("reply delivery failed", "chat_id", chatID, "error", err)
	}

	if err := r.bot.AnswerCallback(ctx, q.ID, ""); err != nil {
		r.logger.Error("callback answer failed", "error", err)
	}
}

// handleMessage handles free text: either the input a previous prompt is
// waiting for, or any other message, which brings up the menu.
func (r *Runner) handleMessage(ctx context.Context, m *Message) {
	chatID := m.Chat.ID

	action, ok := r.pending[chatID]
	if !ok {
		r.sendReply(ctx, chatID, r.handler.Menu())
		return
	}
	delete(r.pending, chatID)

	reply, err := r.routeInput(ctx, action, m.Text)
	if err != nil {
		r.logger.Warn("input rejected", "action", action, "error", err)
		if _, sendErr := r.bot.SendMessage(ctx, chatID, rigcat.ErrorMessage(err), nil); sendErr != nil {
			r.logger.Error("error notice send failed", "chat_id", chatID, "error", sendErr)
		}
		return
	}
	r.sendReply(ctx, chatID, reply)
}

func (r *Runner) routeInput(ctx context.Context, action bot.Action, text string) (*bot.Reply, error) {
	switch action {
	case bot.ActionSearchCPU:
		return r.handler.HandleFieldSearch(ctx, rigcat.ComponentCPU, text)
	case bot.ActionSearchGPU:
		return r.handler.HandleFieldSearch(ctx, rigcat.ComponentGPU, text)
	case bot.ActionSearchRAM:
		return r.handler.HandleFieldSearch(ctx, rigcat.ComponentRAM, text)
	case bot.ActionSearchFull:
		return r.handler.HandleConfigSearch(ctx, text)
	case bot.ActionAsk:
		return r.handler.HandleQuestion(ctx, text)
	}
	return nil, rigcat.Errorf(rigcat.EINTERNAL, "no input route for action %q", action)
}

// showReply edits the originating message in place when the reply fits,
// otherwise sends it as new, split messages.
func (r *Runner) showReply(ctx context.Context, chatID, messageID int64, reply *bot.Reply) error {
	kb := keyboard(reply.Options)
	if len(reply.Text) <= MaxMessageLength {
		return r.bot.EditMessage(ctx, chatID, messageID, reply.Text, kb)
	}

	var markup any
	if kb != nil {
		markup = kb
	}
	_, err := r.bot.SendMessage(ctx, chatID, reply.Text, markup)
	return err
}

func (r *Runner) sendReply(ctx context.Context, chatID int64, reply *bot.Reply) {
	var markup any
	if kb := keyboard(reply.Options); kb != nil {
		markup = kb
	}
	if _, err := r.bot.SendMessage(ctx, chatID, reply.Text, markup); err != nil {
		r.logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}

// keyboard converts handler options into an inline keyboard.
func keyboard(options [][]bot.Option) *InlineKeyboardMarkup {
	if len(options) == 0 {
		return nil
	}
	rows := make([][]InlineKeyboardButton, 0, len(options))
	for _, row := range options {
		buttons := make([]InlineKeyboardButton, 0, len(row))
		for _, o := range row {
			buttons = append(buttons, InlineKeyboardButton{
				Text:         o.Label,
				CallbackData: string(o.Action),
			})
		}
		rows = append(rows, buttons)
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}
