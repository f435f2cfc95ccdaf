package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	Project string `json:"project_name_raw"`
	Minutes *int   `json:"duration_minutes"`
}

type testPayload struct {
	Entries []testEntry `json:"entries"`
}

func TestExtractJSON_CleanObject(t *testing.T) {
	raw := `{"entries":[{"project_name_raw":"Acme","duration_minutes":120}]}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Acme", result.Entries[0].Project)
	require.NotNil(t, result.Entries[0].Minutes)
	assert.Equal(t, 120, *result.Entries[0].Minutes)
}

func TestExtractJSON_FencedWithProse(t *testing.T) {
	raw := "Here you go:\n```json\n{\"entries\":[{\"project_name_raw\":\"Beta\",\"duration_minutes\":null}]}\n```\nAnything else?"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Nil(t, result.Entries[0].Minutes)
}

func TestExtractJSON_UnterminatedFence(t *testing.T) {
	raw := "```json\n{\"entries\":[]}"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestExtractJSON_TopLevelArray(t *testing.T) {
	raw := `Entries: [{"project_name_raw":"Acme"},{"project_name_raw":"Beta"}]`
	result, err := ExtractJSON[[]testEntry](raw, nil)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"entries":[{"project_name_raw":"weird } name ]"}]} trailing }`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "weird } name ]", result.Entries[0].Project)
}

func TestExtractJSON_CommentsAndTrailingCommas(t *testing.T) {
	raw := `{
		// the only entry
		"entries": [
			{"project_name_raw": "Acme", /* guessed */ "duration_minutes": 30,},
		],
	}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 30, *result.Entries[0].Minutes)
}

func TestExtractJSON_CommaInsideStringKept(t *testing.T) {
	raw := `{"entries":[{"project_name_raw":"a, ]"}]}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "a, ]", result.Entries[0].Project)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[testPayload]("I could not find any work in that text.", nil)
	assert.ErrorIs(t, err, ErrMalformedReply)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[testPayload](`{"entries": broken}`, nil)
	assert.ErrorIs(t, err, ErrMalformedReply)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	validator := func(p testPayload) error {
		if len(p.Entries) == 0 {
			return errors.New("no entries")
		}
		return nil
	}
	_, err := ExtractJSON(`{"entries":[]}`, validator)
	assert.ErrorIs(t, err, ErrMalformedReply)
	assert.Contains(t, err.Error(), "validation failed: no entries")
}
