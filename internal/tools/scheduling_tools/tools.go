package scheduling_tools

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

// RegisterSchedulingTools registers meeting creation and availability tools with the MCP server
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Create meeting tool
	createMeetingTool := mcp.NewTool("create_meeting",
		mcp.WithDescription("Create a new meeting. When no preferred start is given, the best available slot over the next week is chosen automatically."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Meeting title"),
		),
		mcp.WithString("participants",
			mcp.Required(),
			mcp.Description("Comma-separated list of participant identifiers (e.g., email addresses)"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Required(),
			mcp.Description("Meeting duration in minutes"),
		),
		mcp.WithString("preferred_start",
			mcp.Description("Preferred start time (RFC3339 format, e.g., '2025-06-16T10:00:00Z'). Omit to let the scheduler pick a slot."),
		),
		mcp.WithString("agenda",
			mcp.Description("Agenda text for the meeting"),
		),
		mcp.WithString("location",
			mcp.Description("Meeting location or conference link"),
		),
		mcp.WithString("meeting_type",
			mcp.Description("Meeting type: standup, planning, review, brainstorm, 1on1, all-hands or regular (default: regular)"),
		),
		mcp.WithString("organizer",
			mcp.Description("Organizer identifier (default: first participant)"),
		),
		mcp.WithString("time_zone",
			mcp.Description("IANA timezone label for the meeting (default: UTC)"),
		),
	)

	s.AddTool(createMeetingTool, common.InstrumentedToolHandlerWithEngine(
		"create_meeting", instrumentation.ComponentScheduler, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateMeeting(ctx, request, sc)
		}))

	// Find optimal slots tool
	findSlotsTool := mcp.NewTool("find_optimal_slots",
		mcp.WithDescription("Find the best meeting slots for a set of participants over the coming weekdays, ranked by a multi-factor score"),
		mcp.WithString("participants",
			mcp.Required(),
			mcp.Description("Comma-separated list of participant identifiers"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Required(),
			mcp.Description("Desired meeting duration in minutes"),
		),
		mcp.WithNumber("days_ahead",
			mcp.Description("How many days ahead to search (default: 7)"),
		),
	)

	s.AddTool(findSlotsTool, common.InstrumentedToolHandlerWithEngine(
		"find_optimal_slots", instrumentation.ComponentScheduler, instrumentation.OperationFindSlots, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindOptimalSlots(ctx, request, sc)
		}))

	// Detect conflicts tool
	detectConflictsTool := mcp.NewTool("detect_scheduling_conflicts",
		mcp.WithDescription("Detect scheduling conflicts for a user in a given time range, with per-meeting overlap minutes"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("User identifier to check for conflicts"),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Start of the range to check (RFC3339 format, e.g., '2025-06-16T10:00:00Z')"),
		),
		mcp.WithString("end_time",
			mcp.Required(),
			mcp.Description("End of the range to check (RFC3339 format, e.g., '2025-06-16T11:00:00Z')"),
		),
	)

	s.AddTool(detectConflictsTool, common.InstrumentedToolHandlerWithEngine(
		"detect_scheduling_conflicts", instrumentation.ComponentScheduler, instrumentation.OperationDetectConflicts, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDetectConflicts(ctx, request, sc)
		}))

	return nil
}

func handleCreateMeeting(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, err := common.RequireString(args, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	participants := common.ParseStringList(args, "participants")
	if len(participants) == 0 {
		return mcp.NewToolResultError("participants is required"), nil
	}

	duration, err := common.RequirePositiveInt(args, "duration_minutes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := meetings.CreateOptions{
		Agenda:    common.OptionalString(args, "agenda", ""),
		Location:  common.OptionalString(args, "location", ""),
		Type:      meetings.NormalizeMeetingType(common.OptionalString(args, "meeting_type", "")),
		TimeZone:  common.OptionalString(args, "time_zone", ""),
		Organizer: common.OptionalString(args, "organizer", ""),
	}

	if _, ok := args["preferred_start"]; ok {
		start, err := common.ParseTime(args, "preferred_start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.PreferredStart = start
	}

	result, err := sc.Scheduler().CreateMeeting(title, participants, duration, opts)
	if err != nil {
		if meetings.IsInvalidInput(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create meeting: %v", err)), nil
	}
	sc.RecordMeetingsStored(ctx, 1)

	rendered, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(rendered)), nil
}

func handleFindOptimalSlots(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	participants := common.ParseStringList(args, "participants")
	if len(participants) == 0 {
		return mcp.NewToolResultError("participants is required"), nil
	}

	duration, err := common.RequirePositiveInt(args, "duration_minutes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	daysAhead := common.OptionalInt(args, "days_ahead", 7)
	if daysAhead <= 0 {
		return mcp.NewToolResultError("days_ahead must be positive"), nil
	}

	recommendation, err := sc.Scheduler().FindOptimalSlots(participants, duration, daysAhead)
	if err != nil {
		if meetings.IsInvalidInput(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to find slots: %v", err)), nil
	}

	rendered, _ := json.MarshalIndent(recommendation, "", "  ")
	return mcp.NewToolResultText(string(rendered)), nil
}

func handleDetectConflicts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	user, err := common.RequireString(args, "user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start, err := common.ParseTime(args, "start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	end, err := common.ParseTime(args, "end_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := sc.Scheduler().DetectConflicts(user, start, end)
	if err != nil {
		if meetings.IsInvalidInput(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to detect conflicts: %v", err)), nil
	}

	rendered, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(rendered)), nil
}
