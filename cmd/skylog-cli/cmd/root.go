package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skylog/internal/adapters/mission"
	"skylog/internal/adapters/pwcg"
	"skylog/internal/adapters/sqlite"
	"skylog/internal/application"
	"skylog/internal/config"
	"skylog/internal/logging"
)

var (
	pwcgRoot string
	gameRoot string
	verbose  bool

	logger *zap.Logger
	store  *sqlite.Store
	syncer *application.Syncer
)

var rootCmd = &cobra.Command{
	Use:   "skylog-cli",
	Short: "CLI for PWCG campaign logbooks",
	Long: `skylog-cli reads the record files of Pat Wilson's Campaign Generator
campaigns and turns them into a unified pilot logbook.

It provides commands to list campaigns, sync their records, inspect aces
and squadron rosters, annotate pilots, and export a campaign diary.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if verbose {
			os.Setenv("SKYLOG_DEBUG", "1")
		}
		var err error
		logger, err = logging.New(!verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		store, err = sqlite.Open(config.AnnotationDBPath(), logger)
		if err != nil {
			return err
		}
		if store.Recovered {
			fmt.Fprintln(os.Stderr, "warning: annotation store was corrupt and has been re-initialized")
		}
		source := pwcg.NewSource(pwcgRoot, logger)
		weather := mission.NewScanner(gameRoot, logger)
		syncer = application.NewSyncer(source, weather, store, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			_ = store.Close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&pwcgRoot, "pwcg-root", "p", config.PWCGRoot(), "path to the PWCG campaign root")
	rootCmd.PersistentFlags().StringVarP(&gameRoot, "game-root", "g", config.GameRoot(), "path to the simulator mission directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// GetSyncer returns the initialized sync pipeline
func GetSyncer() *application.Syncer {
	return syncer
}

// GetStore returns the initialized annotation store
func GetStore() *sqlite.Store {
	return store
}
