package agenda_tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetfewer/meetfewer/internal/meetings"
	"github.com/meetfewer/meetfewer/internal/server"
)

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestHandleGenerateAgenda(t *testing.T) {
	sc := newTestContext(t)

	req := newRequest(map[string]interface{}{
		"meeting_topic": "Q3 planning session",
		"participants":  "alice@company.com, bob@company.com",
	})

	result, err := handleGenerateAgenda(context.Background(), req, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var suggestion meetings.AgendaSuggestion
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &suggestion))
	assert.Equal(t, "Q3 planning session", suggestion.Topic)
	assert.Len(t, suggestion.Participants, 2)
	assert.NotEmpty(t, suggestion.Items)
	assert.NotEmpty(t, suggestion.PreparationTips)
	assert.NotEmpty(t, suggestion.SuccessFactors)

	total := 0
	for _, item := range suggestion.Items {
		assert.Positive(t, item.Minutes)
		total += item.Minutes
	}
	assert.Equal(t, total, suggestion.EstimatedDuration)
}

func TestHandleGenerateAgenda_NoParticipants(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleGenerateAgenda(context.Background(), newRequest(map[string]interface{}{
		"meeting_topic": "weekly standup",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var suggestion meetings.AgendaSuggestion
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &suggestion))
	assert.Empty(t, suggestion.Participants)
	assert.NotEmpty(t, suggestion.Items)
}

func TestHandleGenerateAgenda_MissingTopic(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleGenerateAgenda(context.Background(), newRequest(map[string]interface{}{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "meeting_topic is required")
}
