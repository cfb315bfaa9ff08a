package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"skylog/internal/application/commands"
)

// RegisterWriteTools adds the annotation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, svc *Service) {
	s.AddTool(annotatePilotTool(), annotatePilotHandler(svc))
}

// --- annotate_pilot ---

func annotatePilotTool() mcp.Tool {
	return mcp.NewTool("annotate_pilot",
		mcp.WithDescription("Store personal metadata for a pilot by serial number. Omitted fields keep their stored value."),
		mcp.WithNumber("serial",
			mcp.Description("Pilot serial number"),
			mcp.Required(),
		),
		mcp.WithString("birth_date",
			mcp.Description("Birth date, DD/MM/YYYY"),
		),
		mcp.WithString("birth_place",
			mcp.Description("Birth place"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes"),
		),
		mcp.WithString("photo_path",
			mcp.Description("Path to a portrait image"),
		),
	)
}

func annotatePilotHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		serial := int64(req.GetFloat("serial", 0))
		cmd := commands.NewAnnotatePilotCommand(svc.store, serial)
		cmd.BirthDate = req.GetString("birth_date", "")
		cmd.BirthPlace = req.GetString("birth_place", "")
		cmd.Notes = req.GetString("notes", "")
		cmd.PhotoPath = req.GetString("photo_path", "")

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		svc.InvalidateAll()
		return mcp.NewToolResultText(fmt.Sprintf("Annotation stored for serial %d.", result.Record.Serial)), nil
	}
}
