package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"skylog/internal/application/commands"
	"skylog/internal/domain"
)

// RegisterReadTools adds all read-only campaign tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc *Service) {
	s.AddTool(listCampaignsTool(), listCampaignsHandler(svc))
	s.AddTool(syncCampaignTool(), syncCampaignHandler(svc))
	s.AddTool(pilotSummaryTool(), pilotSummaryHandler(svc))
	s.AddTool(listAcesTool(), listAcesHandler(svc))
	s.AddTool(squadronRosterTool(), squadronRosterHandler(svc))
	s.AddTool(missionLogTool(), missionLogHandler(svc))
}

// --- list_campaigns ---

func listCampaignsTool() mcp.Tool {
	return mcp.NewTool("list_campaigns",
		mcp.WithDescription("List the PWCG campaigns found under the configured campaign root."),
	)
}

func listCampaignsHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListCampaignsCommand(svc.syncer)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Campaigns) == 0 {
			return mcp.NewToolResultText("No campaigns found."), nil
		}
		return mcp.NewToolResultText(strings.Join(result.Campaigns, "\n")), nil
	}
}

// --- sync_campaign ---

func syncCampaignTool() mcp.Tool {
	return mcp.NewTool("sync_campaign",
		mcp.WithDescription("Re-read all record files of a campaign and rebuild its model."),
		mcp.WithString("campaign",
			mcp.Description("Campaign directory name"),
			mcp.Required(),
		),
	)
}

func syncCampaignHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		campaign := req.GetString("campaign", "")
		if campaign == "" {
			return toolError(fmt.Errorf("campaign is required"))
		}
		model, err := svc.Refresh(ctx, campaign)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Synced %s: %d missions, %d aces, %d squadron pilots.",
			campaign, len(model.Missions), len(model.Aces), rosterSize(model))), nil
	}
}

// --- pilot_summary ---

func pilotSummaryTool() mcp.Tool {
	return mcp.NewTool("pilot_summary",
		mcp.WithDescription("Show the tracked pilot's statistics and annotations for a campaign."),
		mcp.WithString("campaign",
			mcp.Description("Campaign directory name"),
			mcp.Required(),
		),
	)
}

func pilotSummaryHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := svc.Model(ctx, req.GetString("campaign", ""))
		if err != nil {
			return toolError(err)
		}
		pilot := model.Pilot

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s %s (serial %d)\n", pilot.Rank, pilot.Name, pilot.Serial)
		if pilot.Squadron != "" {
			fmt.Fprintf(&sb, "Squadron: %s\n", pilot.Squadron)
		}
		fmt.Fprintf(&sb, "Status: %s\n", pilot.Status)
		fmt.Fprintf(&sb, "Sorties: %d  Victories: %d  Ratio: %.2f\n",
			pilot.Stats.Sorties, pilot.Stats.Victories, pilot.Stats.Ratio)
		for category, count := range pilot.Stats.VictoriesByCategory {
			fmt.Fprintf(&sb, "  %s: %d\n", category, count)
		}
		if a := pilot.Annotation; a != nil {
			if a.BirthPlace != "" {
				fmt.Fprintf(&sb, "Born in %s", a.BirthPlace)
				if age, ok := a.Age(model.Campaign.Date); ok {
					fmt.Fprintf(&sb, ", age %d", age)
				}
				sb.WriteString("\n")
			}
			if a.Notes != "" {
				fmt.Fprintf(&sb, "Notes: %s\n", a.Notes)
			}
		}
		for _, achievement := range model.Achievements {
			if achievement.Unlocked {
				fmt.Fprintf(&sb, "Achievement: %s\n", achievement.Title)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_aces ---

func listAcesTool() mcp.Tool {
	return mcp.NewTool("list_aces",
		mcp.WithDescription("List the campaign aces ranked by victories."),
		mcp.WithString("campaign",
			mcp.Description("Campaign directory name"),
			mcp.Required(),
		),
	)
}

func listAcesHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := svc.Model(ctx, req.GetString("campaign", ""))
		if err != nil {
			return toolError(err)
		}
		if len(model.Aces) == 0 {
			return mcp.NewToolResultText("No aces recorded."), nil
		}
		var sb strings.Builder
		for _, ace := range model.Aces {
			fmt.Fprintf(&sb, "%3d. %s", ace.Position, ace.Name)
			if ace.Squadron != "" {
				fmt.Fprintf(&sb, " (%s)", ace.Squadron)
			}
			fmt.Fprintf(&sb, " - %d victories\n", ace.Victories)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- squadron_roster ---

func squadronRosterTool() mcp.Tool {
	return mcp.NewTool("squadron_roster",
		mcp.WithDescription("Show the tracked pilot's squadron roster with per-pilot stats."),
		mcp.WithString("campaign",
			mcp.Description("Campaign directory name"),
			mcp.Required(),
		),
	)
}

func squadronRosterHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := svc.Model(ctx, req.GetString("campaign", ""))
		if err != nil {
			return toolError(err)
		}
		squadron := model.PrimarySquadron()
		if squadron == nil || len(squadron.Roster) == 0 {
			return mcp.NewToolResultText("No roster resolved."), nil
		}
		var sb strings.Builder
		if squadron.Name != "" {
			fmt.Fprintf(&sb, "%s\n", squadron.Name)
		}
		for _, pilot := range squadron.Roster {
			fmt.Fprintf(&sb, "%s %s  %d sorties, %d victories  [%s]\n",
				pilot.Rank, pilot.Name, pilot.Stats.Sorties, pilot.Stats.Victories, pilot.Status)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- mission_log ---

func missionLogTool() mcp.Tool {
	return mcp.NewTool("mission_log",
		mcp.WithDescription("List the campaign missions chronologically with debrief and weather availability."),
		mcp.WithString("campaign",
			mcp.Description("Campaign directory name"),
			mcp.Required(),
		),
	)
}

func missionLogHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		model, err := svc.Model(ctx, req.GetString("campaign", ""))
		if err != nil {
			return toolError(err)
		}
		if len(model.Missions) == 0 {
			return mcp.NewToolResultText("No missions recorded."), nil
		}
		var sb strings.Builder
		for i := range model.Missions {
			mission := &model.Missions[i]
			fmt.Fprintf(&sb, "%s  %-24s", domain.FormatDate(mission.Date), mission.Duty)
			if mission.Report != nil {
				sb.WriteString("  [debrief]")
			}
			if mission.Weather != nil {
				sb.WriteString("  [weather]")
			}
			sb.WriteString("\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func rosterSize(model *domain.CampaignModel) int {
	if squadron := model.PrimarySquadron(); squadron != nil {
		return len(squadron.Roster)
	}
	return 0
}
