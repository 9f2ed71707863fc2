package agenda_tools

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

// RegisterAgendaTools registers agenda generation tools with the MCP server
func RegisterAgendaTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	generateAgendaTool := mcp.NewTool("generate_agenda_suggestions",
		mcp.WithDescription("Generate a structured agenda for a meeting topic, with per-item time budgets, preparation tips and success factors"),
		mcp.WithString("meeting_topic",
			mcp.Required(),
			mcp.Description("Free-text topic of the meeting (e.g., 'Q3 planning session')"),
		),
		mcp.WithString("participants",
			mcp.Description("Comma-separated list of participant identifiers. Used to tailor preparation tips for larger groups."),
		),
	)

	s.AddTool(generateAgendaTool, common.InstrumentedToolHandlerWithEngine(
		"generate_agenda_suggestions", instrumentation.ComponentAgenda, instrumentation.OperationAgenda, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGenerateAgenda(ctx, request, sc)
		}))

	return nil
}

func handleGenerateAgenda(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	topic, err := common.RequireString(args, "meeting_topic")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	participants := common.ParseStringList(args, "participants")

	suggestion, err := sc.AgendaGenerator().Generate(topic, participants)
	if err != nil {
		if meetings.IsInvalidInput(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to generate agenda: %v", err)), nil
	}

	rendered, _ := json.MarshalIndent(suggestion, "", "  ")
	return mcp.NewToolResultText(string(rendered)), nil
}
