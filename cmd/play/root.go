package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/app"
	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/config"
	"github.com/aliskhannn/flipquiz-bot/internal/delivery/terminal"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/logger"
	"github.com/aliskhannn/flipquiz-bot/internal/repository"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

var errUnknownCourse = errors.New("unknown course")

var (
	configDir  string
	logFile    string
	course     string
	difficulty string
	rounds     int
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a flip-card quiz in the terminal",
	Long: `Play a timed flip-card quiz in the terminal.

Flip the card with space, answer with 1-9, go on with enter or n
and quit with q.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory holding config.yaml (default ./config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	rootCmd.Flags().StringVarP(&course, "course", "c", "", "course to play")
	rootCmd.Flags().StringVarP(&difficulty, "difficulty", "d", entities.DifficultyEasy.String(), "easy, normal or hard")
	rootCmd.Flags().IntVarP(&rounds, "rounds", "r", 0, "number of rounds (default from config)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")

	rootCmd.AddCommand(coursesCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func runGame(ctx context.Context) error {
	d, err := entities.ParseDifficulty(difficulty)
	if err != nil {
		return err
	}
	if rounds < 0 {
		return fmt.Errorf("--rounds must be positive, got %d", rounds)
	}

	cfg, lg, questions, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	settings := cfg.Game.Settings()
	if rounds > 0 {
		settings.TotalRounds = rounds
	}
	games := service.NewGameService(questions, settings, lg)

	courses, err := games.Courses()
	if err != nil {
		return err
	}
	name, err := pickCourse(courses, course)
	if err != nil {
		return err
	}

	loop := clock.NewLoop()
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		_ = loop.Run(loopCtx)
	}()

	feed := terminal.NewFeed(0)
	defer feed.Close()

	session := games.NewSession(loop, feed)
	var startErr error
	if err := loop.Call(ctx, func() { startErr = session.Start(name, d) }); err != nil {
		return err
	}
	if startErr != nil {
		return startErr
	}

	model := terminal.NewModel(terminal.NewLoopController(loop, session, lg), feed, terminal.Options{
		Course:     name,
		Difficulty: d,
		NoColor:    noColor,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	if m, ok := final.(terminal.Model); ok {
		if res, ok := m.Results(); ok {
			fmt.Printf("%s · %s: %s correct\n", name, d, res.ScoreLine())
			lg.Info("game finished", zap.String("course", name), zap.Int("correct", res.TotalCorrect))
		}
	}
	return nil
}

// setup loads the config and the question bank.
func setup(ctx context.Context) (*config.Config, *zap.Logger, *repository.QuestionBank, func(), error) {
	var paths []string
	if configDir != "" {
		paths = append(paths, configDir)
	}

	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	lg, err := logger.NewFile(cfg.Env, logFile)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open log file: %w", err)
	}

	loader, closeLoader, err := app.NewBankLoader(ctx, cfg, lg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	questions := repository.NewQuestionBank(loader, lg)
	if err := questions.Load(ctx); err != nil {
		closeLoader()
		return nil, nil, nil, nil, err
	}

	cleanup := func() {
		closeLoader()
		_ = lg.Sync()
	}
	return cfg, lg, questions, cleanup, nil
}

// pickCourse matches name against courses ignoring case. An empty name is
// fine when there is only one course.
func pickCourse(courses []string, name string) (string, error) {
	if len(courses) == 0 {
		return "", service.ErrNoQuestionsAvailable
	}
	if name == "" {
		if len(courses) == 1 {
			return courses[0], nil
		}
		return "", fmt.Errorf("pick a course with --course: %s", strings.Join(courses, ", "))
	}

	for _, c := range courses {
		if strings.EqualFold(c, name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w %q, available: %s", errUnknownCourse, name, strings.Join(courses, ", "))
}
