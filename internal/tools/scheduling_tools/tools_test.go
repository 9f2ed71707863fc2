package scheduling_tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/meetfewer/meetfewer/internal/instrumentation"
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

func TestHandleCreateMeeting(t *testing.T) {
	sc := newTestContext(t)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	req := newRequest(map[string]interface{}{
		"title":            "Sprint Planning",
		"participants":     "alice@company.com, bob@company.com",
		"duration_minutes": float64(60),
		"preferred_start":  start.Format(time.RFC3339),
		"meeting_type":     "planning",
		"agenda":           "Plan the next sprint",
	})

	result, err := handleCreateMeeting(context.Background(), req, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var created meetings.CreateMeetingResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &created))
	assert.Equal(t, "Sprint Planning", created.Meeting.Title)
	assert.Equal(t, meetings.TypePlanning, created.Meeting.Type)
	assert.Equal(t, "alice@company.com", created.Meeting.Organizer)
	assert.True(t, created.Meeting.Start.Equal(start))
	assert.Equal(t, 1, sc.Store().Len())
}

func TestHandleCreateMeeting_PicksSlotWithoutPreferredStart(t *testing.T) {
	sc := newTestContext(t)

	req := newRequest(map[string]interface{}{
		"title":            "Quick Sync",
		"participants":     []interface{}{"alice@company.com", "bob@company.com"},
		"duration_minutes": float64(30),
	})

	result, err := handleCreateMeeting(context.Background(), req, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var created meetings.CreateMeetingResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &created))
	assert.False(t, created.Meeting.Start.IsZero())
	assert.True(t, created.Meeting.End.After(created.Meeting.Start))
}

func TestHandleCreateMeeting_Validation(t *testing.T) {
	sc := newTestContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing title",
			args: map[string]interface{}{
				"participants":     "alice@company.com",
				"duration_minutes": float64(30),
			},
		},
		{
			name: "missing participants",
			args: map[string]interface{}{
				"title":            "No People",
				"duration_minutes": float64(30),
			},
		},
		{
			name: "zero duration",
			args: map[string]interface{}{
				"title":            "No Time",
				"participants":     "alice@company.com",
				"duration_minutes": float64(0),
			},
		},
		{
			name: "bad preferred_start",
			args: map[string]interface{}{
				"title":            "Bad Time",
				"participants":     "alice@company.com",
				"duration_minutes": float64(30),
				"preferred_start":  "next tuesday",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleCreateMeeting(context.Background(), newRequest(tt.args), sc)
			require.NoError(t, err)
			assert.True(t, result.IsError)
		})
	}
	assert.Equal(t, 0, sc.Store().Len())
}

func TestHandleCreateMeeting_MovesStoredGauge(t *testing.T) {
	sc := newTestContext(t)

	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	metrics, err := instrumentation.NewMetrics(meter, false)
	require.NoError(t, err)
	sc.SetMetrics(metrics)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	result, err := handleCreateMeeting(context.Background(), newRequest(map[string]interface{}{
		"title":            "Retro",
		"participants":     "alice@company.com",
		"duration_minutes": float64(30),
		"preferred_start":  start.Format(time.RFC3339),
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	// A failed create must leave the gauge alone.
	result, err = handleCreateMeeting(context.Background(), newRequest(map[string]interface{}{
		"participants":     "alice@company.com",
		"duration_minutes": float64(30),
	}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var value int64
	var found bool
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "stored_meetings" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "stored_meetings should be an int64 sum")
			require.Len(t, sum.DataPoints, 1)
			value = sum.DataPoints[0].Value
			found = true
		}
	}
	require.True(t, found, "stored_meetings metric not found")
	assert.Equal(t, int64(1), value)
}

func TestHandleFindOptimalSlots(t *testing.T) {
	sc := newTestContext(t)

	req := newRequest(map[string]interface{}{
		"participants":     "alice@company.com,bob@company.com",
		"duration_minutes": float64(45),
		"days_ahead":       float64(5),
	})

	result, err := handleFindOptimalSlots(context.Background(), req, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var recommendation meetings.SlotRecommendation
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &recommendation))
	assert.NotEmpty(t, recommendation.Slots)
	assert.LessOrEqual(t, len(recommendation.Slots), 10)
	for i := 1; i < len(recommendation.Slots); i++ {
		assert.GreaterOrEqual(t, recommendation.Slots[i-1].Score, recommendation.Slots[i].Score)
	}
}

func TestHandleFindOptimalSlots_Validation(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleFindOptimalSlots(context.Background(), newRequest(map[string]interface{}{
		"duration_minutes": float64(30),
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = handleFindOptimalSlots(context.Background(), newRequest(map[string]interface{}{
		"participants":     "alice@company.com",
		"duration_minutes": float64(30),
		"days_ahead":       float64(-1),
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleDetectConflicts(t *testing.T) {
	sc := newTestContext(t)

	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Hour)
	_, err := sc.Scheduler().CreateMeeting("Design Review", []string{"alice@company.com"}, 60, meetings.CreateOptions{
		PreferredStart: start,
	})
	require.NoError(t, err)

	req := newRequest(map[string]interface{}{
		"user_id":    "alice@company.com",
		"start_time": start.Add(30 * time.Minute).Format(time.RFC3339),
		"end_time":   start.Add(90 * time.Minute).Format(time.RFC3339),
	})

	result, err := handleDetectConflicts(context.Background(), req, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report meetings.ConflictReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.True(t, report.HasConflicts)
	assert.Equal(t, 1, report.Count)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, 30, report.Conflicts[0].OverlapMinutes)
}

func TestHandleDetectConflicts_UnknownUser(t *testing.T) {
	sc := newTestContext(t)

	now := time.Now().UTC()
	req := newRequest(map[string]interface{}{
		"user_id":    "nobody@company.com",
		"start_time": now.Format(time.RFC3339),
		"end_time":   now.Add(time.Hour).Format(time.RFC3339),
	})

	result, err := handleDetectConflicts(context.Background(), req, sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report meetings.ConflictReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.False(t, report.HasConflicts)
	assert.Equal(t, 0, report.Count)
}

func TestHandleDetectConflicts_Validation(t *testing.T) {
	sc := newTestContext(t)

	result, err := handleDetectConflicts(context.Background(), newRequest(map[string]interface{}{
		"user_id":    "alice@company.com",
		"start_time": "not-a-time",
		"end_time":   time.Now().UTC().Format(time.RFC3339),
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
