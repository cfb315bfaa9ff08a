package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"skylog/internal/application/commands"
)

var rosterCmd = &cobra.Command{
	Use:   "roster <campaign>",
	Short: "Show the tracked pilot's squadron roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		syncCmd := commands.NewSyncCampaignCommand(GetSyncer(), args[0])
		result, err := syncCmd.Execute(ctx)
		if err != nil {
			return err
		}

		squadron := result.Model.PrimarySquadron()
		if squadron == nil || len(squadron.Roster) == 0 {
			fmt.Println("no roster resolved")
			return nil
		}
		if squadron.Name != "" {
			fmt.Println(squadron.Name)
		}
		for _, pilot := range squadron.Roster {
			fmt.Printf("%-10s %-28s %3d sorties %3d victories  %s\n",
				pilot.Rank, pilot.Name, pilot.Stats.Sorties, pilot.Stats.Victories, pilot.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rosterCmd)
}
