package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skylog/internal/application/commands"
	"skylog/internal/domain"
)

var syncShowDiags bool

var syncCmd = &cobra.Command{
	Use:   "sync <campaign>",
	Short: "Read all record files of a campaign and build its model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		syncCmd := commands.NewSyncCampaignCommand(GetSyncer(), args[0])
		syncCmd.Progress = func(stage string) {
			fmt.Fprintf(os.Stderr, "  %s\n", stage)
		}
		result, err := syncCmd.Execute(ctx)
		if err != nil {
			return err
		}

		model := result.Model
		fmt.Printf("%s\n", model.Campaign.Name)
		if date := domain.FormatDate(model.Campaign.Date); date != "" {
			fmt.Printf("  date       %s\n", date)
		}
		fmt.Printf("  missions   %d\n", len(model.Missions))
		fmt.Printf("  aces       %d\n", len(model.Aces))
		fmt.Printf("  sorties    %d\n", model.Pilot.Stats.Sorties)
		fmt.Printf("  victories  %d\n", model.Pilot.Stats.Victories)

		if syncShowDiags {
			for _, diag := range result.Diagnostics {
				fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n",
					diag.Severity, diag.Category, diag.Path, diag.Message)
			}
		} else if len(result.Diagnostics) > 0 {
			fmt.Fprintf(os.Stderr, "%d diagnostics (re-run with --diagnostics to see them)\n",
				len(result.Diagnostics))
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncShowDiags, "diagnostics", false, "print every recovered condition")
	rootCmd.AddCommand(syncCmd)
}
