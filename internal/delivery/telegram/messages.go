// messages.go contains message templates and labels shown to users.

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
)

const (
	msgWelcome = "<b>JLPT 단어 퀴즈</b>\n\n" +
		"레벨과 품사를 고르고 4지선다 퀴즈로 단어를 외워 보세요.\n" +
		"맞힌 단어는 같은 설정의 다음 퀴즈에서 빠집니다."
	msgHelp = "<b>명령어</b>\n\n" +
		"/quiz - 현재 설정으로 퀴즈 시작\n" +
		"/level - 레벨 선택 (예: /level N4)\n" +
		"/type - 문제 유형 선택 (발음, 뜻, 한국어→일본어, 빈칸)\n" +
		"/pos - 품사 선택\n" +
		"/review - 지난 퀴즈에서 틀린 단어 복습\n" +
		"/stats - 최근 기록과 자주 틀린 단어\n" +
		"/reset - 학습 기록 초기화\n" +
		"/help - 도움말"
	msgUseCommands    = "명령어로 이용해 주세요. /help 에서 목록을 볼 수 있습니다."
	msgUnknownCommand = "알 수 없는 명령어입니다. /help 를 입력해 보세요."
	msgInternalError  = "문제가 발생했습니다. 잠시 후 다시 시도해 주세요."

	msgUnknownLevel = "레벨은 N1~N5 중에서 골라 주세요."
	msgUnknownType  = "알 수 없는 문제 유형입니다."

	msgNoActiveQuiz    = "진행 중인 퀴즈가 없습니다. /quiz 로 시작하세요."
	msgQuizExpired     = "지난 퀴즈의 버튼입니다."
	msgNoWrongToReview = "복습할 틀린 단어가 없습니다."
	msgNoReviewMatch   = "틀린 단어가 현재 설정의 단어 목록에 없습니다. 설정을 바꿔 보세요."
	msgNoStats         = "아직 푼 퀴즈가 없습니다."
	msgAdminOnly       = "관리자만 사용할 수 있습니다."
	msgWordExcluded    = "이 단어를 앞으로 출제하지 않습니다."
	msgSaveFailed      = "결과를 저장하지 못했습니다. 채점은 아래와 같습니다."

	msgResetPrompt    = "무엇을 초기화할까요?"
	msgResetKeyDone   = "현재 설정의 출제 기록을 초기화했습니다."
	msgResetAllDone   = "모든 학습 기록을 삭제했습니다."
	msgResetCancelled = "초기화를 취소했습니다."

	msgDataError = "단어 데이터 문제로 퀴즈를 만들 수 없습니다. 관리자에게 알려 주세요."
)

var typeLabels = map[entities.QuestionType]string{
	entities.QuestionReading:   "발음",
	entities.QuestionMeaning:   "뜻",
	entities.QuestionKrToJp:    "한국어→일본어",
	entities.QuestionFillBlank: "빈칸 채우기",
}

var groupLabels = map[entities.POSGroup]string{
	entities.GroupAll:       "전체",
	entities.GroupNoun:      "명사",
	entities.GroupVerb:      "동사",
	entities.GroupAdjective: "형용사",
	entities.GroupOther:     "기타",
}

var tagLabels = map[entities.POS]string{
	entities.POSAdverb:       "부사",
	entities.POSParticle:     "조사",
	entities.POSConjunction:  "접속사",
	entities.POSInterjection: "감탄사",
	entities.POSPronoun:      "대명사",
	entities.POSCounter:      "조수사",
	entities.POSExpression:   "표현",
}

func levelLabel(l entities.Level) string {
	if l == "" {
		return "전체 레벨"
	}
	return string(l)
}

func typeLabel(qt entities.QuestionType) string {
	if s, ok := typeLabels[qt]; ok {
		return s
	}
	return string(qt)
}

func groupLabel(g entities.POSGroup) string {
	if s, ok := groupLabels[g]; ok {
		return s
	}
	return string(g)
}

func tagLabel(p entities.POS) string {
	if s, ok := tagLabels[p]; ok {
		return s
	}
	return string(p)
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}
