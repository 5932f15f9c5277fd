package telegram

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/storage"
)

// startGame replaces the chat's game with a new session for course and d.
func (h *Handler) startGame(ctx context.Context, chatID int64, course string, d entities.Difficulty) error {
	token := uuid.New()
	loop := clock.NewLoop()
	loopCtx, cancel := context.WithCancel(ctx)

	out := newOutbox(h.bot, chatID, h.logger)
	stop := func() {
		cancel()
		out.close()
	}

	p := newPresenter(token, course, d, loop, h.renderInterval, out.push)
	session := h.games.NewSession(loop, p)
	game := storage.NewGame(token, course, d, loop, session, stop)

	// Finished games keep their slot so "play again" can find them; only the
	// loop and the outbox go away.
	p.onFinish = stop

	go out.run()
	go func() {
		if err := loop.Run(loopCtx); err != nil && ctx.Err() == nil {
			h.logger.Debug("game loop stopped", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}()

	if prev := h.storage.Store(chatID, game); prev != nil {
		prev.Close()
	}

	var startErr error
	if err := loop.Call(ctx, func() { startErr = session.Start(course, d) }); err != nil {
		h.closeGame(chatID, game)
		return fmt.Errorf("start game: %w", err)
	}
	if startErr != nil {
		h.closeGame(chatID, game)
		return startErr
	}

	h.logger.Info("game started",
		zap.Int64("chat_id", chatID),
		zap.String("course", course),
		zap.String("difficulty", d.String()),
		zap.String("token", token.String()),
	)
	return nil
}
