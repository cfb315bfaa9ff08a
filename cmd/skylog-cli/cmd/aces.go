package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"skylog/internal/application/commands"
)

var acesCmd = &cobra.Command{
	Use:   "aces <campaign>",
	Short: "Show the campaign aces ranked by victories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		syncCmd := commands.NewSyncCampaignCommand(GetSyncer(), args[0])
		result, err := syncCmd.Execute(ctx)
		if err != nil {
			return err
		}
		for _, ace := range result.Model.Aces {
			fmt.Printf("%3d. %-28s %-22s %3d\n", ace.Position, ace.Name, ace.Squadron, ace.Victories)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(acesCmd)
}
