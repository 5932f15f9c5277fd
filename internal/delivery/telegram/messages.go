// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error messages.
const (
	msgBankLoading     = "Questions are still loading… Try again in a moment."
	msgBankUnavailable = "The question bank could not be loaded. Please try later."
	msgNoQuestions     = "No multiple-choice questions found for this course and difficulty."
	msgUnknownCourse   = "There is no such course. Pick one from the list."
	msgNoCourses       = "There are no playable courses yet."
	msgInternalError   = "Something went wrong. Please try later."
	msgUnknownCommand  = "Unknown command. Available commands:\n\n/play — pick a course and start a game\n/stop — stop the current game\n/help — how to play"
)

// Callback answers.
const (
	cbStaleGame  = "This game is over."
	cbStaleRound = "This round is over."
)

const (
	msgNoGame      = "No game is running. Use /play to start one."
	msgGameStopped = "Game stopped. Use /play to start a new one."
	msgPickCourse  = "📚 Pick a course:"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// buildWelcomeMessage builds welcome message safely for MarkdownV2.
func buildWelcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Flip Quiz"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Every round hides a question under a card. Flip it, then answer before the timer runs out."))
	sb.WriteString("\n\n")
	sb.WriteString(md("⚡ Watch out for stress events: the clock may speed up, slow down, give you time or take it away."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Pick a course below or use /play."))

	return sb.String()
}

// buildHelpMessage builds the /help text safely for MarkdownV2.
func buildHelpMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("How to play"))
	sb.WriteString("\n\n")
	sb.WriteString(md("1. /play shows the courses, /play <course> jumps to the difficulty pick."))
	sb.WriteString("\n")
	sb.WriteString(md("2. Tap a card to reveal the question and start the timer."))
	sb.WriteString("\n")
	sb.WriteString(md("3. Tap an option to answer. No answer before time is up counts as wrong."))
	sb.WriteString("\n")
	sb.WriteString(md("4. After the last round you get your score and every answer."))
	sb.WriteString("\n\n")
	sb.WriteString(md("/stop ends the current game."))

	return sb.String()
}

func buildDifficultyPrompt(course string) string {
	return bold(course) + "\n\n" + md("🎚 Pick a difficulty:")
}
