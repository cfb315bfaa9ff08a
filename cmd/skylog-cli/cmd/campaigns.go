package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"skylog/internal/application/commands"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List the campaigns under the PWCG root",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		listCmd := commands.NewListCampaignsCommand(GetSyncer())
		result, err := listCmd.Execute(ctx)
		if err != nil {
			return err
		}
		for _, campaign := range result.Campaigns {
			fmt.Println(campaign)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(campaignsCmd)
}
