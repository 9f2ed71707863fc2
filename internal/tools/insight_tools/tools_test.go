package insight_tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

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

func putMeeting(t *testing.T, sc *server.ServerContext, title string, participants []string, start time.Time, minutes int, typ meetings.MeetingType) meetings.Meeting {
	t.Helper()
	stored, err := sc.Store().PutMeeting(meetings.Meeting{
		Title:        title,
		Participants: participants,
		Start:        start,
		End:          start.Add(time.Duration(minutes) * time.Minute),
		Type:         typ,
	})
	require.NoError(t, err)
	return stored
}

func TestHandleAnalyzePatterns(t *testing.T) {
	sc := newTestContext(t)

	recent := time.Now().UTC().Add(-48 * time.Hour)
	putMeeting(t, sc, "Daily Standup", []string{"alice@company.com", "bob@company.com"}, recent, 15, meetings.TypeStandup)
	putMeeting(t, sc, "Roadmap Review", []string{"alice@company.com"}, recent.Add(2*time.Hour), 90, meetings.TypeReview)

	req := newRequest(map[string]interface{}{
		"user_id": "alice@company.com",
		"period":  "month",
	})

	result, err := handleAnalyzePatterns(context.Background(), req, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var analysis meetings.PatternAnalysis
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &analysis))
	assert.Equal(t, "alice@company.com", analysis.UserID)
	assert.Equal(t, meetings.PeriodMonth, analysis.Period)
	assert.Equal(t, 2, analysis.TotalMeetings)
	assert.InDelta(t, 1.75, analysis.TotalHours, 0.001)
	// Half the meetings run over an hour, which trips the long-meeting rule.
	assert.Contains(t, analysis.Insights, "Many long meetings detected. Consider breaking them into shorter, focused sessions.")
}

func TestHandleAnalyzePatterns_DefaultsToMonth(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleAnalyzePatterns(context.Background(), newRequest(map[string]interface{}{
		"user_id": "alice@company.com",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var analysis meetings.PatternAnalysis
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &analysis))
	assert.Equal(t, meetings.PeriodMonth, analysis.Period)
	assert.Equal(t, 0, analysis.TotalMeetings)
}

func TestHandleAnalyzePatterns_MissingUser(t *testing.T) {
	// An omitted user is an error, not an analysis over nothing. The
	// analyzer filters by participant membership, so an empty user
	// would silently match zero meetings.
	sc := newTestContext(t)

	recent := time.Now().UTC().Add(-48 * time.Hour)
	putMeeting(t, sc, "Daily Standup", []string{"alice@company.com"}, recent, 15, meetings.TypeStandup)

	result, err := handleAnalyzePatterns(context.Background(), newRequest(map[string]interface{}{
		"period": "month",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "user_id")
}

func TestHandleAnalyzePatterns_BadPeriod(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleAnalyzePatterns(context.Background(), newRequest(map[string]interface{}{
		"period": "fortnight",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleCalculateWorkload(t *testing.T) {
	sc := newTestContext(t)

	recent := time.Now().UTC().Add(-24 * time.Hour)
	putMeeting(t, sc, "Planning", []string{"alice@company.com", "bob@company.com"}, recent, 60, meetings.TypePlanning)
	putMeeting(t, sc, "1on1", []string{"alice@company.com", "carol@company.com"}, recent.Add(2*time.Hour), 30, meetings.TypeOneOnOne)

	req := newRequest(map[string]interface{}{
		"team_members": "alice@company.com, bob@company.com, carol@company.com",
	})

	result, err := handleCalculateWorkload(context.Background(), req, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report meetings.WorkloadReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	require.Len(t, report.Workloads, 3)
	assert.Equal(t, 2, report.Workloads[0].TotalMeetings)
	for _, w := range report.Workloads {
		assert.GreaterOrEqual(t, w.Score, 0.0)
		assert.LessOrEqual(t, w.Score, 100.0)
	}
}

func TestHandleCalculateWorkload_MissingMembers(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleCalculateWorkload(context.Background(), newRequest(map[string]interface{}{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "team_members is required")
}

func TestHandleScoreMeeting(t *testing.T) {
	sc := newTestContext(t)

	start := time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)
	stored := putMeeting(t, sc, "Daily Standup", []string{"alice@company.com", "bob@company.com", "carol@company.com"}, start, 45, meetings.TypeStandup)

	req := newRequest(map[string]interface{}{
		"meeting_id": stored.ID,
	})

	result, err := handleScoreMeeting(context.Background(), req, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report meetings.EffectivenessReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.Equal(t, stored.ID, report.MeetingID)
	assert.InDelta(t, 6.0, report.Components.DurationEfficiency, 0.001)
	assert.InDelta(t, 8.5, report.Components.AgendaAdherence, 0.001)
	assert.NotEmpty(t, report.Rating)

	// Scoring writes the overall score back into the store.
	scored, err := sc.Store().Meeting(stored.ID)
	require.NoError(t, err)
	require.NotNil(t, scored.EffectivenessScore)
	assert.InDelta(t, report.OverallScore, *scored.EffectivenessScore, 0.001)
}

func TestHandleScoreMeeting_NotFound(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleScoreMeeting(context.Background(), newRequest(map[string]interface{}{
		"meeting_id": "no-such-meeting",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not found")
}

func TestHandleOptimizeSchedule(t *testing.T) {
	sc := newTestContext(t)

	require.NoError(t, sc.Store().PutPreference(meetings.UserPreference{
		UserID:            "alice@company.com",
		WorkStartHour:     9,
		WorkEndHour:       17,
		MaxDailyMeetings:  2,
		PreferredDuration: 30,
		MinBreak:          15,
	}))

	day := time.Now().UTC().Add(-72 * time.Hour).Truncate(24 * time.Hour).Add(9 * time.Hour)
	for i := 0; i < 4; i++ {
		putMeeting(t, sc, "Back to Back", []string{"alice@company.com"}, day.Add(time.Duration(i)*time.Hour), 60, meetings.TypeRegular)
	}

	result, err := handleOptimizeSchedule(context.Background(), newRequest(map[string]interface{}{
		"user_id": "alice@company.com",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var optimization meetings.ScheduleOptimization
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &optimization))
	assert.Equal(t, "alice@company.com", optimization.UserID)
	assert.NotEmpty(t, optimization.Recommendations)
	assert.NotEmpty(t, optimization.Priorities)
}

func TestHandleOptimizeSchedule_NoPreference(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleOptimizeSchedule(context.Background(), newRequest(map[string]interface{}{
		"user_id": "stranger@company.com",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not found")
}
