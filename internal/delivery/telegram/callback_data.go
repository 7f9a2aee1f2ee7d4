package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionAnswer   = "ans"
	actionExclude  = "excl"
	actionLevel    = "lvl"
	actionType     = "type"
	actionGroup    = "pos"
	actionTag      = "tag"
	actionQuiz     = "quiz"
	actionReset    = "reset"
	actionSettings = "settings"
)

// Quiz sub-actions.
const (
	quizStart  = "start"
	quizReview = "review"
)

const (
	resetKey    = "key"
	resetAll    = "all"
	resetCancel = "cancel"
)

// levelAll stands for "every level" in level callbacks.
const levelAll = "all"

var errBadCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "" when it is missing.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParams parses every parameter as an integer.
func (cd callbackData) intParams(n int) ([]int64, error) {
	if len(cd.Params) != n {
		return nil, errBadCallback
	}
	out := make([]int64, n)
	for i, p := range cd.Params {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, errBadCallback
		}
		out[i] = v
	}
	return out, nil
}

// buildAnswerCallback encodes a choice for one question of the quiz
// identified by quizID.
func buildAnswerCallback(quizID int64, questionIndex, choice int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			strconv.FormatInt(quizID, 10),
			strconv.Itoa(questionIndex),
			strconv.Itoa(choice),
		},
	}.encode()
}

// buildExcludeCallback lets an administrator drop the word of one question.
func buildExcludeCallback(quizID int64, questionIndex int) string {
	return callbackData{
		Action: actionExclude,
		Params: []string{strconv.FormatInt(quizID, 10), strconv.Itoa(questionIndex)},
	}.encode()
}

func buildLevelCallback(level string) string {
	return callbackData{Action: actionLevel, Params: []string{level}}.encode()
}

func buildTypeCallback(qt string) string {
	return callbackData{Action: actionType, Params: []string{qt}}.encode()
}

func buildGroupCallback(group string) string {
	return callbackData{Action: actionGroup, Params: []string{group}}.encode()
}

func buildTagCallback(tag string) string {
	return callbackData{Action: actionTag, Params: []string{tag}}.encode()
}

func buildQuizStartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizStart}}.encode()
}

func buildQuizReviewCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizReview}}.encode()
}

func buildSettingsCallback() string {
	return actionSettings
}

func buildResetCallback(sub string) string {
	return callbackData{Action: actionReset, Params: []string{sub}}.encode()
}
