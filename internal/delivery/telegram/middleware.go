package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/repository"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			text := userMessage(err)
			if text == msgInternalError {
				h.logger.Error("handle error",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			} else {
				h.logger.Debug("request rejected",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			}
			h.sendError(chatID, text)
			return nil
		}
		return nil
	}
}

// userMessage maps an error to the text shown in the chat.
func userMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrBankNotReady):
		return msgBankLoading
	case errors.Is(err, repository.ErrBankUnavailable):
		return msgBankUnavailable
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		return msgNoQuestions
	case errors.Is(err, errUnknownCourse):
		return msgUnknownCourse
	default:
		return msgInternalError
	}
}
