package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/storage"
)

const defaultRenderInterval = time.Second

type Handler struct {
	bot            Bot
	logger         *zap.Logger
	games          GameService
	storage        *storage.GameStorage
	renderInterval time.Duration
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	games GameService,
	store *storage.GameStorage,
	renderInterval time.Duration,
) *Handler {
	if renderInterval <= 0 {
		renderInterval = defaultRenderInterval
	}

	return &Handler{
		bot:            bot,
		logger:         logger,
		games:          games,
		storage:        store,
		renderInterval: renderInterval,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()
	defer h.storage.CloseAll()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart())(ctx, chatID)

	case "play":
		_ = h.withErrorHandling(h.handlePlay(update.Message.CommandArguments()))(ctx, chatID)

	case "stop":
		_ = h.withErrorHandling(h.handleStop())(ctx, chatID)

	case "help":
		h.send(newMessage(chatID, buildHelpMessage()))

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the user's "clock" and shows text, if any, as a toast.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
