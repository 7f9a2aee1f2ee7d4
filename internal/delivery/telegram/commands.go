package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/service"
)

const (
	statsAttempts = 5
	statsTopWrong = 10
)

func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.settingsService.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, msgWelcome+"\n\n"+renderSettings(settings))
		msg.ReplyMarkup = buildSettingsKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleQuiz(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.startQuiz(ctx, chatID, userID)
	}
}

// startQuiz builds a quiz for the current settings and sends its first question.
func (h *Handler) startQuiz(ctx context.Context, chatID, userID int64) error {
	settings, err := h.settingsService.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	res, err := h.sessionService.Start(ctx, settings)
	if err != nil {
		return h.reportBuildError(ctx, chatID, userID, err)
	}

	return h.sendQuizResult(ctx, chatID, userID, res)
}

func (h *Handler) handleReview(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.startReview(ctx, chatID, userID)
	}
}

// startReview quizzes the user again on the words missed in the last attempt.
func (h *Handler) startReview(ctx context.Context, chatID, userID int64) error {
	recent, err := h.attemptService.Recent(ctx, userID, 1)
	if err != nil {
		return err
	}
	if len(recent) == 0 || recent[0].WrongCount() == 0 {
		h.send(newHTMLMessage(chatID, msgNoWrongToReview))
		return nil
	}

	settings, err := h.settingsService.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	res, err := h.sessionService.StartReview(ctx, settings, recent[0].WrongWordIDs())
	if err != nil {
		return h.reportBuildError(ctx, chatID, userID, err)
	}

	return h.sendQuizResult(ctx, chatID, userID, res)
}

func (h *Handler) sendQuizResult(ctx context.Context, chatID, userID int64, res service.QuizResult) error {
	if res.Outcome != service.OutcomeReady {
		h.logger.Info("quiz not built",
			zap.Int64("user_id", userID),
			zap.String("outcome", res.Outcome.String()),
			zap.String("key", res.Key.String()),
			zap.Int("total", res.Total),
			zap.Int("eligible", res.Eligible),
		)

		msg := newHTMLMessage(chatID, renderNotReady(res))
		if res.Outcome == service.OutcomeExhausted {
			msg.ReplyMarkup = buildExhaustedKeyboard()
		}
		h.send(msg)
		return nil
	}

	session, err := h.sessionService.Current(ctx, userID)
	if err != nil {
		return err
	}

	msg := newHTMLMessage(chatID, renderQuestion(session, 0))
	msg.ReplyMarkup = buildQuestionKeyboard(session, 0, h.isAdmin(ctx, userID))
	h.send(msg)
	return nil
}

// reportBuildError shows data problems to the user and passes every other
// error on.
func (h *Handler) reportBuildError(ctx context.Context, chatID, userID int64, err error) error {
	text, ok := renderBuildError(err, h.isAdmin(ctx, userID))
	if !ok {
		return err
	}

	h.logger.Error("quiz build failed on word data",
		zap.Int64("user_id", userID),
		zap.Error(err),
	)
	h.send(newHTMLMessage(chatID, text))
	return nil
}

func (h *Handler) handleLevel(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args = strings.TrimSpace(args)
		if args == "" {
			settings, err := h.settingsService.GetOrCreate(ctx, userID)
			if err != nil {
				return err
			}
			msg := newHTMLMessage(chatID, "레벨을 선택하세요.")
			msg.ReplyMarkup = buildLevelKeyboard(settings.Level)
			h.send(msg)
			return nil
		}

		level, ok := parseLevelArg(args)
		if !ok {
			h.send(newHTMLMessage(chatID, msgUnknownLevel))
			return nil
		}

		settings, err := h.settingsService.SetLevel(ctx, userID, level)
		if err != nil {
			return err
		}
		h.sendSettings(chatID, settings)
		return nil
	}
}

func (h *Handler) handleType(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if strings.TrimSpace(args) == "" {
			settings, err := h.settingsService.GetOrCreate(ctx, userID)
			if err != nil {
				return err
			}
			msg := newHTMLMessage(chatID, "문제 유형을 선택하세요.")
			msg.ReplyMarkup = buildTypeKeyboard(settings.QuestionType)
			h.send(msg)
			return nil
		}

		qt, err := entities.ParseQuestionType(args)
		if err != nil {
			h.send(newHTMLMessage(chatID, msgUnknownType))
			return nil
		}

		settings, err := h.settingsService.SetQuestionType(ctx, userID, qt)
		if err != nil {
			return err
		}
		h.sendSettings(chatID, settings)
		return nil
	}
}

func (h *Handler) handlePOS(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.settingsService.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		if strings.TrimSpace(args) != "" {
			settings, err = h.settingsService.SetGroup(ctx, userID, entities.ParsePOSGroup(args))
			if err != nil {
				return err
			}
		}

		msg := newHTMLMessage(chatID, renderSettings(settings))
		msg.ReplyMarkup = buildGroupKeyboard(settings)
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		attempts, err := h.attemptService.Recent(ctx, userID, statsAttempts)
		if err != nil {
			return fmt.Errorf("recent attempts: %w", err)
		}
		top, err := h.attemptService.TopWrongWords(ctx, userID, statsTopWrong)
		if err != nil {
			return fmt.Errorf("top wrong words: %w", err)
		}

		h.send(newHTMLMessage(chatID, renderStats(attempts, top)))
		return nil
	}
}

func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newHTMLMessage(chatID, msgResetPrompt)
		msg.ReplyMarkup = buildResetKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) sendSettings(chatID int64, settings *entities.UserSettings) {
	msg := newHTMLMessage(chatID, renderSettings(settings))
	msg.ReplyMarkup = buildSettingsKeyboard()
	h.send(msg)
}

// parseLevelArg accepts "N4", "4" and "all". The empty level means every level.
func parseLevelArg(raw string) (entities.Level, bool) {
	if strings.EqualFold(strings.TrimSpace(raw), levelAll) {
		return "", true
	}
	level := entities.ParseLevel(raw)
	return level, level.Valid()
}

// editView replaces the text and keyboard of a bot message.
func (h *Handler) editView(chatID int64, msgID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	edit := newHTMLEdit(chatID, msgID, text)
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	h.send(edit)
}
