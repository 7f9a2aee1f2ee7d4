package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackData_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		action string
		params []string
	}{
		{name: "answer", data: buildAnswerCallback(1700000000123, 3, 2), action: actionAnswer, params: []string{"1700000000123", "3", "2"}},
		{name: "exclude", data: buildExcludeCallback(42, 0), action: actionExclude, params: []string{"42", "0"}},
		{name: "level", data: buildLevelCallback("N4"), action: actionLevel, params: []string{"N4"}},
		{name: "level picker", data: buildLevelCallback(""), action: actionLevel, params: []string{""}},
		{name: "tag", data: buildTagCallback("adverb"), action: actionTag, params: []string{"adverb"}},
		{name: "review", data: buildQuizReviewCallback(), action: actionQuiz, params: []string{quizReview}},
		{name: "settings", data: buildSettingsCallback(), action: actionSettings, params: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := decodeCallback(tt.data)
			assert.Equal(t, tt.action, cd.Action)
			assert.Equal(t, tt.params, cd.Params)
			assert.Equal(t, tt.data, cd.Raw)
			assert.LessOrEqual(t, len(tt.data), 64)
		})
	}
}

func TestCallbackData_IntParams(t *testing.T) {
	ids, err := decodeCallback(buildAnswerCallback(9, 1, 3)).intParams(3)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 1, 3}, ids)

	_, err = decodeCallback("ans:9:x:3").intParams(3)
	assert.ErrorIs(t, err, errBadCallback)

	_, err = decodeCallback("ans:9:1").intParams(3)
	assert.ErrorIs(t, err, errBadCallback)
}

func TestCallbackData_Param(t *testing.T) {
	cd := decodeCallback("reset:key")
	assert.Equal(t, resetKey, cd.param(0))
	assert.Equal(t, "", cd.param(1))
}
