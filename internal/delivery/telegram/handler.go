package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Services groups the use cases the bot talks to.
type Services struct {
	Users    UserService
	Settings SettingsService
	Sessions SessionService
	Attempts AttemptService
	Ledgers  LedgerService
	Resets   ResetService
}

type Handler struct {
	bot             *tgbotapi.BotAPI
	logger          *zap.Logger
	userService     UserService
	settingsService SettingsService
	sessionService  SessionService
	attemptService  AttemptService
	ledgerService   LedgerService
	resetService    ResetService
}

func NewHandler(bot *tgbotapi.BotAPI, logger *zap.Logger, s Services) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		userService:     s.Users,
		settingsService: s.Settings,
		sessionService:  s.Sessions,
		attemptService:  s.Attempts,
		ledgerService:   s.Ledgers,
		resetService:    s.Resets,
	}
}

// Run polls Telegram until ctx is cancelled. Updates are handled one at a
// time, so per-user quiz state is never touched concurrently.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text),
	)

	created, err := h.userService.EnsureUser(ctx, userID, chatID)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	} else if created {
		h.logger.Info("new user", zap.Int64("user_id", userID))
	}

	if !msg.IsCommand() {
		h.send(newHTMLMessage(chatID, msgUseCommands))
		return
	}

	args := msg.CommandArguments()

	switch msg.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart(userID))(ctx, chatID)
	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))
	case "quiz":
		_ = h.withErrorHandling(h.handleQuiz(userID))(ctx, chatID)
	case "level":
		_ = h.withErrorHandling(h.handleLevel(userID, args))(ctx, chatID)
	case "type":
		_ = h.withErrorHandling(h.handleType(userID, args))(ctx, chatID)
	case "pos":
		_ = h.withErrorHandling(h.handlePOS(userID, args))(ctx, chatID)
	case "review":
		_ = h.withErrorHandling(h.handleReview(userID))(ctx, chatID)
	case "stats":
		_ = h.withErrorHandling(h.handleStats(userID))(ctx, chatID)
	case "reset":
		_ = h.withErrorHandling(h.handleReset())(ctx, chatID)
	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) isAdmin(ctx context.Context, userID int64) bool {
	ok, err := h.userService.IsAdmin(ctx, userID)
	if err != nil {
		h.logger.Warn("failed to check admin", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}
	return ok
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the loading state of a pressed button, optionally
// with a short toast.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
