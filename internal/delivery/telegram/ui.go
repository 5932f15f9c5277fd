package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

const cardCount = 3

var difficultyLabels = map[entities.Difficulty]string{
	entities.DifficultyEasy:   "🟢 Easy",
	entities.DifficultyNormal: "🟡 Normal",
	entities.DifficultyHard:   "🔴 Hard",
}

// buildCourseKeyboard builds one button per course, two per row.
func buildCourseKeyboard(courses []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for i, course := range courses {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(course, buildCourseCallback(i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildDifficultyKeyboard builds difficulty buttons for a course.
func buildDifficultyKeyboard(courseIdx int, difficulties []entities.Difficulty) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, d := range difficulties {
		label, ok := difficultyLabels[d]
		if !ok {
			label = d.String()
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildDifficultyCallback(courseIdx, d)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Courses", buildMenuCallback()),
		),
	)
}

// buildCardsKeyboard builds the face-down cards of a round. Any card flips it.
func buildCardsKeyboard(token uuid.UUID, round int) *tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, cardCount)
	for i := 0; i < cardCount; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🂠", buildFlipCallback(token, round)))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(row)
	return &kb
}

// buildOptionsKeyboard builds one button per option.
func buildOptionsKeyboard(token uuid.UUID, round int, q *entities.Question) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		label := fmt.Sprintf("%d. %s", i+1, option)
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(token, round, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildNextKeyboard builds the button that leaves a finished round.
func buildNextKeyboard(token uuid.UUID, round int, last bool) *tgbotapi.InlineKeyboardMarkup {
	label := "Next ▶️"
	if last {
		label = "🏁 Results"
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildNextCallback(token, round)),
		),
	)
	return &kb
}

// buildResultsKeyboard builds keyboard for the results screen.
func buildResultsKeyboard(token uuid.UUID) *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildAgainCallback(token)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Courses", buildMenuCallback()),
		),
	)
	return &kb
}
