package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

// Sender is the part of the Bot API used to deliver messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot is satisfied by *tgbotapi.BotAPI.
type Bot interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type GameService interface {
	Courses() ([]string, error)
	Difficulties(course string) ([]entities.Difficulty, error)
	NewSession(sched clock.Scheduler, observer service.Observer) *service.Session
}
