package feed_test

import (
	"encoding/json"
	"testing"

	"github.com/mtlprog/ccsfeed/internal/domain"
	"github.com/mtlprog/ccsfeed/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameText(t *testing.T) {
	text, err := feed.FrameText(&domain.Event{
		ID:        1234,
		ContestID: "11111111-1111-1111-1111-111111111111",
		Type:      domain.EventTypeTeams,
		Data:      json.RawMessage(`{"id":"team-42","name":"tourist"}`),
	})
	require.NoError(t, err)

	var frame struct {
		Type  string          `json:"type"`
		ID    *string         `json:"id"`
		Data  json.RawMessage `json:"data"`
		Token string          `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &frame))
	assert.Equal(t, "teams", frame.Type)
	require.NotNil(t, frame.ID)
	assert.Equal(t, "team-42", *frame.ID)
	assert.Equal(t, "1234", frame.Token)
	assert.JSONEq(t, `{"id":"team-42","name":"tourist"}`, string(frame.Data))
}

func TestFrameTextNoPayloadID(t *testing.T) {
	// State payloads have no id field; the frame restates null.
	text, err := feed.FrameText(&domain.Event{
		ID:   7,
		Type: domain.EventTypeState,
		Data: json.RawMessage(`{"started":null,"frozen":null,"ended":null,"thawed":null,"finalized":null,"end_of_updates":null}`),
	})
	require.NoError(t, err)

	var frame map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(text), &frame))
	assert.Equal(t, "null", string(frame["id"]))
	assert.Equal(t, `"7"`, string(frame["token"]))
}
