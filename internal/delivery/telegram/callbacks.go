package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/service"
	"github.com/aliskhannn/flipquiz-bot/internal/storage"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var toast string
	err := func() error {
		switch data.Action {
		case actionMenu:
			return h.handleMenuCallback(cb)
		case actionCourse:
			return h.handleCourseCallback(cb, data)
		case actionDifficulty:
			return h.handleDifficultyCallback(ctx, cb, data)
		case actionFlip, actionAnswer, actionNext:
			var err error
			toast, err = h.handleRoundCallback(ctx, chatID, data)
			return err
		case actionAgain:
			var err error
			toast, err = h.handleAgainCallback(ctx, chatID, data)
			return err
		default:
			h.logger.Debug("unknown callback", zap.String("data", cb.Data))
			return nil
		}
	}()

	h.answerCallback(cb, toast)

	if err != nil {
		_ = h.withErrorHandling(func(context.Context, int64) error { return err })(ctx, chatID)
	}
}

func (h *Handler) handleMenuCallback(cb *tgbotapi.CallbackQuery) error {
	courses, err := h.games.Courses()
	if err != nil {
		return err
	}

	kb := buildCourseKeyboard(courses)
	h.send(newEdit(cb.Message.Chat.ID, cb.Message.MessageID, md(msgPickCourse), &kb))
	return nil
}

func (h *Handler) handleCourseCallback(cb *tgbotapi.CallbackQuery, data callbackData) error {
	idx, err := data.courseIndex()
	if err != nil {
		h.logger.Debug("invalid course callback", zap.String("data", data.Raw))
		return nil
	}

	courses, err := h.games.Courses()
	if err != nil {
		return err
	}

	text, kb, err := h.difficultyMenu(courses, idx)
	if err != nil {
		return err
	}

	h.send(newEdit(cb.Message.Chat.ID, cb.Message.MessageID, text, &kb))
	return nil
}

func (h *Handler) handleDifficultyCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) error {
	idx, err := data.courseIndex()
	if err != nil {
		h.logger.Debug("invalid difficulty callback", zap.String("data", data.Raw))
		return nil
	}
	d, err := data.difficulty()
	if err != nil {
		h.logger.Debug("invalid difficulty callback", zap.String("data", data.Raw), zap.Error(err))
		return nil
	}

	courses, err := h.games.Courses()
	if err != nil {
		return err
	}
	if idx >= len(courses) {
		return errUnknownCourse
	}

	// The menu goes away once the game starts.
	h.send(tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}))

	return h.startGame(ctx, cb.Message.Chat.ID, courses[idx], d)
}

// handleRoundCallback applies a flip, answer or next tap to the chat's game.
// Taps carrying another game's token or another round are ignored.
func (h *Handler) handleRoundCallback(ctx context.Context, chatID int64, data callbackData) (string, error) {
	ref, err := data.gameRef()
	if err != nil {
		h.logger.Debug("invalid round callback", zap.String("data", data.Raw))
		return "", nil
	}

	game, ok := h.storage.Get(chatID)
	if !ok || !game.Matches(ref.Token) {
		return cbStaleGame, nil
	}

	var option int
	if data.Action == actionAnswer {
		if option, err = data.option(); err != nil {
			h.logger.Debug("invalid answer callback", zap.String("data", data.Raw))
			return "", nil
		}
	}

	var (
		stale     bool
		actionErr error
	)
	err = game.Loop.Call(ctx, func() {
		if game.Session.Round() != ref.Round {
			stale = true
			return
		}

		switch data.Action {
		case actionFlip:
			actionErr = game.Session.Reveal()
		case actionAnswer:
			var recorded bool
			recorded, actionErr = game.Session.Choose(option)
			stale = !recorded && actionErr == nil
		case actionNext:
			actionErr = game.Session.Advance()
		}
	})
	if err != nil {
		return cbStaleGame, nil
	}

	switch {
	case stale:
		return cbStaleRound, nil
	case errors.Is(actionErr, service.ErrInvalidPhase), errors.Is(actionErr, service.ErrInvalidOption):
		h.logger.Debug("round action ignored",
			zap.Int64("chat_id", chatID),
			zap.String("action", data.Action),
			zap.Error(actionErr),
		)
		return "", nil
	default:
		return "", actionErr
	}
}

// handleAgainCallback replays the finished game's course and difficulty.
func (h *Handler) handleAgainCallback(ctx context.Context, chatID int64, data callbackData) (string, error) {
	if len(data.Params) != 1 {
		return "", nil
	}

	game, ok := h.storage.Get(chatID)
	if !ok || !game.Matches(data.Params[0]) {
		return cbStaleGame, nil
	}

	return "", h.startGame(ctx, chatID, game.Course, game.Difficulty)
}

func (h *Handler) difficultyMenu(courses []string, idx int) (string, tgbotapi.InlineKeyboardMarkup, error) {
	if idx < 0 || idx >= len(courses) {
		return "", tgbotapi.InlineKeyboardMarkup{}, errUnknownCourse
	}

	difficulties, err := h.games.Difficulties(courses[idx])
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	return buildDifficultyPrompt(courses[idx]), buildDifficultyKeyboard(idx, difficulties), nil
}

// closeGame stops game and forgets it if it is still the chat's current one.
func (h *Handler) closeGame(chatID int64, game *storage.Game) {
	h.storage.Remove(chatID, game)
	game.Close()
}
