package insight_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetfewer/meetfewer/internal/instrumentation"
	"github.com/meetfewer/meetfewer/internal/meetings"
	"github.com/meetfewer/meetfewer/internal/server"
	"github.com/meetfewer/meetfewer/internal/tools/common"
)

// RegisterInsightTools registers analytics and scoring tools with the MCP server
func RegisterInsightTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Pattern analysis tool
	analyzePatternsTool := mcp.NewTool("analyze_meeting_patterns",
		mcp.WithDescription("Analyze a user's meeting history for frequency, duration and effectiveness patterns, with productivity insights"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("User identifier whose meetings should be analyzed"),
		),
		mcp.WithString("period",
			mcp.Description("Analysis period: week, month or all (default: month)"),
		),
	)

	s.AddTool(analyzePatternsTool, common.InstrumentedToolHandlerWithEngine(
		"analyze_meeting_patterns", instrumentation.ComponentAnalyzer, instrumentation.OperationAnalyzePatterns, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAnalyzePatterns(ctx, request, sc)
		}))

	// Workload balance tool
	workloadTool := mcp.NewTool("calculate_workload_balance",
		mcp.WithDescription("Calculate per-member meeting workload scores for a team over the trailing 30 days, with rebalancing recommendations"),
		mcp.WithString("team_members",
			mcp.Required(),
			mcp.Description("Comma-separated list of team member identifiers"),
		),
	)

	s.AddTool(workloadTool, common.InstrumentedToolHandlerWithEngine(
		"calculate_workload_balance", instrumentation.ComponentAnalyzer, instrumentation.OperationWorkload, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCalculateWorkload(ctx, request, sc)
		}))

	// Effectiveness scoring tool
	scoreTool := mcp.NewTool("score_meeting_effectiveness",
		mcp.WithDescription("Score a meeting's effectiveness across duration, engagement, agenda, outcomes and timing, with improvement suggestions"),
		mcp.WithString("meeting_id",
			mcp.Required(),
			mcp.Description("Identifier of the meeting to score"),
		),
	)

	s.AddTool(scoreTool, common.InstrumentedToolHandlerWithEngine(
		"score_meeting_effectiveness", instrumentation.ComponentScorer, instrumentation.OperationScore, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleScoreMeeting(ctx, request, sc)
		}))

	// Schedule optimization tool
	optimizeTool := mcp.NewTool("optimize_meeting_schedule",
		mcp.WithDescription("Analyze a user's schedule against their preferences and recommend optimizations with estimated time savings"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("User identifier whose schedule should be optimized. A preference record must exist for the user."),
		),
	)

	s.AddTool(optimizeTool, common.InstrumentedToolHandlerWithEngine(
		"optimize_meeting_schedule", instrumentation.ComponentOptimizer, instrumentation.OperationOptimize, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleOptimizeSchedule(ctx, request, sc)
		}))

	return nil
}

func handleAnalyzePatterns(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	user, err := common.RequireString(args, "user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	period := meetings.Period(common.OptionalString(args, "period", string(meetings.PeriodMonth)))

	analysis, err := sc.Analyzer().AnalyzePatterns(user, period)
	if err != nil {
		if meetings.IsInvalidInput(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze patterns: %v", err)), nil
	}

	rendered, _ := json.MarshalIndent(analysis, "", "  ")
	return mcp.NewToolResultText(string(rendered)), nil
}

func handleCalculateWorkload(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	members := common.ParseStringList(args, "team_members")
	if len(members) == 0 {
		return mcp.NewToolResultError("team_members is required"), nil
	}

	report, err := sc.Analyzer().CalculateWorkload(members)
	if err != nil {
		if meetings.IsInvalidInput(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to calculate workload: %v", err)), nil
	}

	rendered, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(rendered)), nil
}

func handleScoreMeeting(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	meetingID, err := common.RequireString(args, "meeting_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := sc.Scorer().ScoreMeeting(meetingID)
	if err != nil {
		if meetings.IsNotFound(err) || meetings.IsInvalidInput(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to score meeting: %v", err)), nil
	}

	rendered, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(rendered)), nil
}

func handleOptimizeSchedule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	user, err := common.RequireString(args, "user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	optimization, err := sc.Optimizer().OptimizeSchedule(user)
	if err != nil {
		if meetings.IsNotFound(err) || meetings.IsInvalidInput(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to optimize schedule: %v", err)), nil
	}

	rendered, _ := json.MarshalIndent(optimization, "", "  ")
	return mcp.NewToolResultText(string(rendered)), nil
}
