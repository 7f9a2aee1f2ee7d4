package telegram

import (
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

func checked(label string, on bool) string {
	if on {
		return "✅ " + label
	}
	return label
}

// buildQuestionKeyboard lays out the choices two per row. Administrators get
// an extra button that drops the word from future quizzes.
func buildQuestionKeyboard(s *entities.QuizSession, i int, admin bool) tgbotapi.InlineKeyboardMarkup {
	q := s.Quiz.Questions[i]
	id := quizID(s)

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for c, choice := range q.Choices {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(choice, buildAnswerCallback(id, i, c)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if admin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 이 단어 제외", buildExcludeCallback(id, i)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard offers a new quiz and, when something was missed, a review.
func buildResultKeyboard(a *entities.Attempt) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 새 퀴즈", buildQuizStartCallback()),
		),
	}
	if a.WrongCount() > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 틀린 단어 복습", buildQuizReviewCallback()),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildExhaustedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♻️ 이 범위 초기화", buildResetCallback(resetKey)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ 설정 바꾸기", buildSettingsCallback()),
		),
	)
}

func buildSettingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 퀴즈 시작", buildQuizStartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 레벨", buildLevelCallback("")),
			tgbotapi.NewInlineKeyboardButtonData("🏷 품사", buildGroupCallback("")),
			tgbotapi.NewInlineKeyboardButtonData("❓ 유형", buildTypeCallback("")),
		),
	)
}

func buildLevelKeyboard(current entities.Level) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, l := range entities.Levels {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(checked(string(l), l == current), buildLevelCallback(string(l))))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(checked(levelLabel(""), current == ""), buildLevelCallback(levelAll)),
		),
		backRow(),
	)
}

func buildTypeKeyboard(current entities.QuestionType) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, qt := range entities.QuestionTypes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(checked(typeLabel(qt), qt == current), buildTypeCallback(string(qt))),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildGroupKeyboard shows the groups and, while "other" is selected, its
// sub-tags as toggles.
func buildGroupKeyboard(s *entities.UserSettings) tgbotapi.InlineKeyboardMarkup {
	var groups []tgbotapi.InlineKeyboardButton
	for _, g := range entities.POSGroups {
		groups = append(groups, tgbotapi.NewInlineKeyboardButtonData(checked(groupLabel(g), g == s.Group), buildGroupCallback(string(g))))
	}
	rows := [][]tgbotapi.InlineKeyboardButton{groups[:3], groups[3:]}

	if s.Group == entities.GroupOther {
		var row []tgbotapi.InlineKeyboardButton
		for _, tag := range entities.OtherTags {
			on := len(s.EnabledTags) == 0 || slices.Contains(s.EnabledTags, tag)
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(checked(tagLabel(tag), on), buildTagCallback(string(tag))))
			if len(row) == 3 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♻️ 현재 설정만", buildResetCallback(resetKey)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 모든 기록", buildResetCallback(resetAll)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("취소", buildResetCallback(resetCancel)),
		),
	)
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« 설정으로", buildSettingsCallback()),
	)
}
