package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/app"
	"github.com/aliskhannn/flipquiz-bot/internal/config"
	"github.com/aliskhannn/flipquiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/flipquiz-bot/internal/logger"
	"github.com/aliskhannn/flipquiz-bot/internal/repository"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
	"github.com/aliskhannn/flipquiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot API", zap.Error(err))
	}

	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot",
		},
		{
			Command:     "play",
			Description: "Play a quiz (usage: /play HTML)",
		},
		{
			Command:     "stop",
			Description: "Stop the current game",
		},
		{
			Command:     "help",
			Description: "How to play",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	loader, closeLoader, err := app.NewBankLoader(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open question bank", zap.Error(err))
	}
	defer closeLoader()

	// The bot answers right away; games can start once the bank is loaded.
	questions := repository.NewQuestionBank(loader, lg)
	go func() {
		_ = questions.Load(ctx)
	}()

	games := service.NewGameService(questions, cfg.Game.Settings(), lg)

	handler := telegram.NewHandler(
		bot,
		lg,
		games,
		storage.NewGameStorage(),
		cfg.Telegram.RenderInterval,
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
