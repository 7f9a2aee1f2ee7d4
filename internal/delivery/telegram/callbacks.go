package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

// callbackContext carries what every callback handler needs.
type callbackContext struct {
	id     string
	userID int64
	chatID int64
	msgID  int
	data   callbackData
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	c := callbackContext{
		id:     cb.ID,
		userID: cb.From.ID,
		chatID: cb.Message.Chat.ID,
		msgID:  cb.Message.MessageID,
		data:   decodeCallback(cb.Data),
	}

	var err error
	switch c.data.Action {
	case actionAnswer:
		err = h.onAnswer(ctx, c)
	case actionExclude:
		err = h.onExclude(ctx, c)
	case actionLevel:
		err = h.onLevel(ctx, c)
	case actionType:
		err = h.onType(ctx, c)
	case actionGroup:
		err = h.onGroup(ctx, c)
	case actionTag:
		err = h.onTag(ctx, c)
	case actionQuiz:
		err = h.onQuiz(ctx, c)
	case actionSettings:
		err = h.onSettings(ctx, c)
	case actionReset:
		err = h.onReset(ctx, c)
	default:
		h.answerCallback(c.id, "")
		return
	}

	if err != nil {
		h.logger.Error("callback failed",
			zap.Int64("user_id", c.userID),
			zap.String("data", c.data.Raw),
			zap.Error(err),
		)
		h.answerCallback(c.id, msgInternalError)
	}
}

// activeSession returns the session the pressed button belongs to, or nil
// after answering the callback when the button is stale.
func (h *Handler) activeSession(ctx context.Context, c callbackContext, id int64) (*entities.QuizSession, error) {
	session, err := h.sessionService.Current(ctx, c.userID)
	if errors.Is(err, entities.ErrProgressNotFound) {
		h.answerCallback(c.id, msgNoActiveQuiz)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if quizID(session) != id || session.Submitted() {
		h.answerCallback(c.id, msgQuizExpired)
		return nil, nil
	}
	return session, nil
}

func (h *Handler) onAnswer(ctx context.Context, c callbackContext) error {
	ids, err := c.data.intParams(3)
	if err != nil {
		return err
	}

	session, err := h.activeSession(ctx, c, ids[0])
	if err != nil || session == nil {
		return err
	}

	session, err = h.sessionService.Answer(ctx, c.userID, int(ids[1]), int(ids[2]))
	switch {
	case errors.Is(err, entities.ErrQuizSubmitted),
		errors.Is(err, entities.ErrQuestionOutOfRange),
		errors.Is(err, entities.ErrChoiceOutOfRange):
		h.answerCallback(c.id, msgQuizExpired)
		return nil
	case err != nil:
		return err
	}
	h.answerCallback(c.id, "")

	if next, ok := session.Quiz.NextUnanswered(); ok {
		kb := buildQuestionKeyboard(session, next, h.isAdmin(ctx, c.userID))
		h.editView(c.chatID, c.msgID, renderQuestion(session, next), &kb)
		return nil
	}

	return h.submit(ctx, c)
}

// submit grades the finished quiz. A failed save still shows the score, since
// the in-memory ledger has already been updated.
func (h *Handler) submit(ctx context.Context, c callbackContext) error {
	attempt, err := h.attemptService.Submit(ctx, c.userID)
	if attempt == nil {
		if errors.Is(err, entities.ErrQuizSubmitted) {
			return nil
		}
		return err
	}

	text := renderAttempt(attempt)
	if err != nil {
		text = msgSaveFailed + "\n\n" + text
	}

	kb := buildResultKeyboard(attempt)
	h.editView(c.chatID, c.msgID, text, &kb)
	return nil
}

func (h *Handler) onExclude(ctx context.Context, c callbackContext) error {
	if !h.isAdmin(ctx, c.userID) {
		h.answerCallback(c.id, msgAdminOnly)
		return nil
	}

	ids, err := c.data.intParams(2)
	if err != nil {
		return err
	}

	session, err := h.activeSession(ctx, c, ids[0])
	if err != nil || session == nil {
		return err
	}

	i := int(ids[1])
	if i < 0 || i >= session.Quiz.Len() {
		h.answerCallback(c.id, msgQuizExpired)
		return nil
	}

	if err := h.ledgerService.Exclude(ctx, c.userID, session.LedgerKey(), session.Quiz.Questions[i].WordID); err != nil {
		return err
	}
	h.answerCallback(c.id, msgWordExcluded)
	return nil
}

func (h *Handler) onLevel(ctx context.Context, c callbackContext) error {
	raw := c.data.param(0)
	if raw == "" {
		settings, err := h.settingsService.GetOrCreate(ctx, c.userID)
		if err != nil {
			return err
		}
		h.answerCallback(c.id, "")
		kb := buildLevelKeyboard(settings.Level)
		h.editView(c.chatID, c.msgID, "레벨을 선택하세요.", &kb)
		return nil
	}

	level, ok := parseLevelArg(raw)
	if !ok {
		h.answerCallback(c.id, msgUnknownLevel)
		return nil
	}

	settings, err := h.settingsService.SetLevel(ctx, c.userID, level)
	if err != nil {
		return err
	}
	return h.showSettings(c, settings)
}

func (h *Handler) onType(ctx context.Context, c callbackContext) error {
	raw := c.data.param(0)
	if raw == "" {
		settings, err := h.settingsService.GetOrCreate(ctx, c.userID)
		if err != nil {
			return err
		}
		h.answerCallback(c.id, "")
		kb := buildTypeKeyboard(settings.QuestionType)
		h.editView(c.chatID, c.msgID, "문제 유형을 선택하세요.", &kb)
		return nil
	}

	qt, err := entities.ParseQuestionType(raw)
	if err != nil {
		h.answerCallback(c.id, msgUnknownType)
		return nil
	}

	settings, err := h.settingsService.SetQuestionType(ctx, c.userID, qt)
	if err != nil {
		return err
	}
	return h.showSettings(c, settings)
}

func (h *Handler) onGroup(ctx context.Context, c callbackContext) error {
	settings, err := h.settingsService.GetOrCreate(ctx, c.userID)
	if err != nil {
		return err
	}

	if raw := c.data.param(0); raw != "" {
		settings, err = h.settingsService.SetGroup(ctx, c.userID, entities.ParsePOSGroup(raw))
		if err != nil {
			return err
		}
		if settings.Group != entities.GroupOther {
			return h.showSettings(c, settings)
		}
	}

	h.answerCallback(c.id, "")
	kb := buildGroupKeyboard(settings)
	h.editView(c.chatID, c.msgID, renderSettings(settings), &kb)
	return nil
}

func (h *Handler) onTag(ctx context.Context, c callbackContext) error {
	settings, err := h.settingsService.ToggleOtherTag(ctx, c.userID, entities.ParsePOS(c.data.param(0)))
	if err != nil {
		return err
	}

	h.answerCallback(c.id, "")
	kb := buildGroupKeyboard(settings)
	h.editView(c.chatID, c.msgID, renderSettings(settings), &kb)
	return nil
}

func (h *Handler) onQuiz(ctx context.Context, c callbackContext) error {
	h.answerCallback(c.id, "")

	switch c.data.param(0) {
	case quizReview:
		return h.startReview(ctx, c.chatID, c.userID)
	default:
		return h.startQuiz(ctx, c.chatID, c.userID)
	}
}

func (h *Handler) onSettings(ctx context.Context, c callbackContext) error {
	settings, err := h.settingsService.GetOrCreate(ctx, c.userID)
	if err != nil {
		return err
	}
	return h.showSettings(c, settings)
}

func (h *Handler) onReset(ctx context.Context, c callbackContext) error {
	var text string

	switch c.data.param(0) {
	case resetKey:
		settings, err := h.settingsService.GetOrCreate(ctx, c.userID)
		if err != nil {
			return err
		}
		key := entities.LedgerKey{Group: settings.Filter().GroupKey(), Type: settings.QuestionType}
		if err := h.resetService.ResetKey(ctx, c.userID, key); err != nil {
			return err
		}
		h.logger.Info("ledger key reset", zap.Int64("user_id", c.userID), zap.String("key", key.String()))
		text = msgResetKeyDone
	case resetAll:
		if err := h.resetService.ResetUser(ctx, c.userID); err != nil {
			return err
		}
		h.logger.Info("user reset", zap.Int64("user_id", c.userID))
		text = msgResetAllDone
	default:
		text = msgResetCancelled
	}

	h.answerCallback(c.id, "")
	kb := buildSettingsKeyboard()
	h.editView(c.chatID, c.msgID, text, &kb)
	return nil
}

func (h *Handler) showSettings(c callbackContext, settings *entities.UserSettings) error {
	h.answerCallback(c.id, "")
	kb := buildSettingsKeyboard()
	h.editView(c.chatID, c.msgID, renderSettings(settings), &kb)
	return nil
}
