package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "skylog/internal/adapters/mcp"
	"skylog/internal/adapters/mission"
	"skylog/internal/adapters/pwcg"
	"skylog/internal/adapters/sqlite"
	"skylog/internal/application"
	"skylog/internal/config"
	"skylog/internal/logging"
)

func main() {
	pwcgFlag := flag.String("pwcg-root", config.PWCGRoot(), "path to the PWCG campaign root")
	gameFlag := flag.String("game-root", config.GameRoot(), "path to the simulator mission directory")
	flag.Parse()

	// Stdio transport carries the protocol, so logs stay off stdout.
	logger, err := logging.New(true)
	if err != nil {
		log.Fatalf("skylog-mcp: %v", err)
	}

	store, err := sqlite.Open(config.AnnotationDBPath(), logger)
	if err != nil {
		log.Fatalf("skylog-mcp: %v", err)
	}
	defer store.Close()

	source := pwcg.NewSource(*pwcgFlag, logger)
	weather := mission.NewScanner(*gameFlag, logger)
	syncer := application.NewSyncer(source, weather, store, logger)
	svc := mcpadapter.NewService(syncer, store)

	mcpServer := server.NewMCPServer(
		"skylog-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check that returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("skylog-mcp: %v", err)
	}
}
