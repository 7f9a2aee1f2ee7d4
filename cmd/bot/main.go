package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/config"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/jlpt-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/logger"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/morph"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/repository"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/service"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("bot stopped", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	words, err := repository.LoadWordPool(cfg.WordsCSVPath)
	if err != nil {
		return err
	}
	stats := words.Stats()
	lg.Info("word pool loaded",
		zap.String("path", cfg.WordsCSVPath),
		zap.Int("rows", stats.Rows),
		zap.Int("kept", stats.Kept),
		zap.Int("dropped", stats.Dropped),
		zap.Int("duplicates", stats.Duplicates),
	)
	for level, n := range words.CountByLevel() {
		lg.Debug("level size", zap.String("level", string(level)), zap.Int("words", n))
	}

	analyzer, err := morph.NewAnalyzer()
	if err != nil {
		return err
	}

	promotion, err := cfg.Quiz.PromotionRatios()
	if err != nil {
		return err
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	transactor := postgres.NewTransactor(pool)

	userRepo := pgrepo.NewUserRepository(pool)
	settingsRepo := pgrepo.NewSettingsRepository(pool)
	attemptRepo := pgrepo.NewAttemptRepository(pool)
	ledgerRepo := pgrepo.NewLedgerRepository(pool)
	progressRepo := pgrepo.NewProgressRepository(pool)
	submissionRepo := pgrepo.NewSubmissionRepository(transactor)
	resetRepo := pgrepo.NewResetRepository(transactor)

	builder := service.NewQuestionBuilder(
		service.NewDistractorSelector(nil),
		service.NewBlankLocator(analyzer),
		nil,
		cfg.Quiz.MinKanjiConfidence,
	)
	quizService := service.NewQuizService(words, builder, service.QuizConfig{
		Length:    cfg.Quiz.Length,
		Policy:    cfg.Quiz.Policy(),
		Promotion: promotion,
	}, nil, lg)

	ledgerService := service.NewLedgerService(storage.NewLedgerStorage(), ledgerRepo, lg)
	sessionService := service.NewSessionService(quizService, ledgerService, storage.NewSessionStorage(), progressRepo, lg)
	attemptService := service.NewAttemptService(sessionService, ledgerService, submissionRepo, attemptRepo, lg)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return err
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "quiz", Description: "퀴즈 시작"},
		{Command: "level", Description: "레벨 선택"},
		{Command: "type", Description: "문제 유형 선택"},
		{Command: "pos", Description: "품사 선택"},
		{Command: "review", Description: "틀린 단어 복습"},
		{Command: "stats", Description: "기록 보기"},
		{Command: "reset", Description: "기록 초기화"},
		{Command: "help", Description: "도움말"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(bot, lg, telegram.Services{
		Users:    service.NewUserService(userRepo, cfg.AdminIDs),
		Settings: service.NewSettingsService(settingsRepo),
		Sessions: sessionService,
		Attempts: attemptService,
		Ledgers:  ledgerService,
		Resets:   service.NewResetService(resetRepo, ledgerService, sessionService),
	})

	return handler.Run(ctx)
}
