package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var errUnknownCourse = errors.New("unknown course")

// handleStart greets the user and shows the course menu.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.send(newMessage(chatID, buildWelcomeMessage()))
		return h.sendCourseMenu(chatID)
	}
}

// handlePlay shows the course menu, or the difficulty pick when a course is named.
func (h *Handler) handlePlay(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		name := strings.TrimSpace(args)
		if name == "" {
			return h.sendCourseMenu(chatID)
		}

		courses, err := h.games.Courses()
		if err != nil {
			return err
		}

		idx := findCourse(courses, name)
		if idx < 0 {
			if err := h.sendCourseMenu(chatID); err != nil {
				return err
			}
			return fmt.Errorf("%w: %q", errUnknownCourse, name)
		}

		text, kb, err := h.difficultyMenu(courses, idx)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

// handleStop stops the game running in the chat.
func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		game := h.storage.Delete(chatID)
		if game == nil {
			h.send(newPlainMessage(chatID, msgNoGame))
			return nil
		}

		game.Close()
		h.logger.Info("game stopped by user", zap.Int64("chat_id", chatID))
		h.send(newPlainMessage(chatID, msgGameStopped))
		return nil
	}
}

func (h *Handler) sendCourseMenu(chatID int64) error {
	courses, err := h.games.Courses()
	if err != nil {
		return err
	}

	if len(courses) == 0 {
		h.send(newPlainMessage(chatID, msgNoCourses))
		return nil
	}

	msg := newMessage(chatID, md(msgPickCourse))
	msg.ReplyMarkup = buildCourseKeyboard(courses)
	h.send(msg)
	return nil
}

// findCourse returns the index of name in courses, ignoring case, or -1.
func findCourse(courses []string, name string) int {
	for i, c := range courses {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}
