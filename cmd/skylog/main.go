package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"skylog/internal/adapters/mission"
	"skylog/internal/adapters/pwcg"
	"skylog/internal/adapters/sqlite"
	"skylog/internal/adapters/tui"
	"skylog/internal/application"
	"skylog/internal/config"
	"skylog/internal/logging"
)

func main() {
	// The TUI owns the terminal, so the logger stays silent.
	logger, err := logging.New(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(config.AnnotationDBPath(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	source := pwcg.NewSource(config.PWCGRoot(), logger)
	weather := mission.NewScanner(config.GameRoot(), logger)
	syncer := application.NewSyncer(source, weather, store, logger)

	app := tui.NewApp(syncer, store)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
