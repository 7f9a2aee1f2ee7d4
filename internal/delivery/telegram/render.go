package telegram

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/samber/lo"

	"github.com/aliskhannn/jlpt-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/jlpt-quiz-bot/internal/service"
)

const maxWrongListed = 10

func esc(s string) string {
	return html.EscapeString(s)
}

// quizID identifies a quiz in callback data so stale buttons can be rejected.
func quizID(s *entities.QuizSession) int64 {
	return s.StartedAt.UnixMilli()
}

func renderSettings(s *entities.UserSettings) string {
	var sb strings.Builder
	sb.WriteString("<b>⚙️ 현재 설정</b>\n\n")
	fmt.Fprintf(&sb, "📚 레벨: %s\n", esc(levelLabel(s.Level)))
	fmt.Fprintf(&sb, "🏷 품사: %s\n", esc(groupLabel(s.Group)))
	if s.Group == entities.GroupOther && len(s.EnabledTags) > 0 {
		tags := lo.Map(s.EnabledTags, func(p entities.POS, _ int) string { return tagLabel(p) })
		fmt.Fprintf(&sb, "   (%s)\n", esc(strings.Join(tags, ", ")))
	}
	fmt.Fprintf(&sb, "❓ 문제 유형: %s", esc(typeLabel(s.QuestionType)))
	return sb.String()
}

// renderQuestion shows question i of the session with its progress header.
func renderQuestion(s *entities.QuizSession, i int) string {
	q := s.Quiz.Questions[i]

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>문제 %d/%d</b>", i+1, s.Quiz.Len())
	if s.Review {
		sb.WriteString(" · 복습")
	}
	sb.WriteString("\n\n")
	sb.WriteString(esc(q.Prompt))
	if q.Template != "" {
		sb.WriteString("\n\n")
		sb.WriteString(esc(q.Template))
	}
	return sb.String()
}

func renderAttempt(a *entities.Attempt) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>🏁 결과: %d/%d</b>\n", a.Score, a.Length)
	fmt.Fprintf(&sb, "%s · %s\n", esc(a.GroupKey), esc(typeLabel(a.Type)))

	if a.WrongCount() == 0 {
		sb.WriteString("\n🎉 모두 맞혔습니다!")
		return sb.String()
	}

	sb.WriteString("\n<b>틀린 문제</b>\n")
	for i, w := range a.Wrong {
		if i == maxWrongListed {
			fmt.Fprintf(&sb, "… 외 %d개\n", a.WrongCount()-maxWrongListed)
			break
		}
		picked := w.Picked
		if picked == "" {
			picked = "(미응답)"
		}
		fmt.Fprintf(&sb, "%d. %s [%s] %s\n   ✗ %s → ✓ %s\n",
			w.Number, esc(w.WordID), esc(w.Reading), esc(w.Meaning), esc(picked), esc(w.Correct))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderNotReady explains why no quiz could be built. Exhaustion of a filter
// that had enough words is a success: every word has been covered.
func renderNotReady(res service.QuizResult) string {
	switch res.Outcome {
	case service.OutcomeExhausted:
		if res.Total >= res.Required {
			return fmt.Sprintf(
				"🎉 <b>%s</b> 범위의 단어를 모두 학습했습니다!\n\n"+
					"남은 단어 %d개로는 %d문항 퀴즈를 만들 수 없습니다. 기록을 초기화하면 다시 풀 수 있습니다.",
				esc(res.Key.String()), res.Eligible, res.Required,
			)
		}
		return fmt.Sprintf(
			"현재 설정에 맞는 단어가 %d개뿐이라 %d문항 퀴즈를 만들 수 없습니다.\n레벨이나 품사를 바꿔 보세요.",
			res.Total, res.Required,
		)
	case service.OutcomeNoMatchingWords:
		return msgNoReviewMatch
	default:
		return msgInternalError
	}
}

// renderBuildError turns a quiz build error into a message. Administrators see
// which word could not get enough distractors.
func renderBuildError(err error, admin bool) (string, bool) {
	var ic *service.InsufficientCandidatesError
	if !errors.As(err, &ic) {
		return "", false
	}
	if !admin {
		return msgDataError, true
	}
	return fmt.Sprintf(
		"%s\n\n<code>%s</code> (%s, %s): 오답 후보 %d개 / 필요 %d개",
		msgDataError, esc(ic.Word), esc(string(ic.POS)), esc(string(ic.Type)), ic.Available, ic.Need,
	), true
}

func renderStats(attempts []entities.Attempt, top []entities.WordStat) string {
	if len(attempts) == 0 && len(top) == 0 {
		return msgNoStats
	}

	var sb strings.Builder
	sb.WriteString("<b>📊 최근 기록</b>\n")
	for _, a := range attempts {
		fmt.Fprintf(&sb, "%s · %s · %s · %d/%d\n",
			a.CreatedAt.Format("01-02 15:04"), esc(a.GroupKey), esc(typeLabel(a.Type)), a.Score, a.Length)
	}

	if len(top) > 0 {
		sb.WriteString("\n<b>자주 틀린 단어</b>\n")
		for i, s := range top {
			fmt.Fprintf(&sb, "%d. %s (%s) ✗%d ✓%d\n", i+1, esc(s.WordID), esc(typeLabel(s.Type)), s.Wrong, s.Correct)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
