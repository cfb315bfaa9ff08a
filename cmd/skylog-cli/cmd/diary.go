package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"skylog/internal/adapters/diary"
	"skylog/internal/application/commands"
)

var (
	diaryOut       string
	diaryClipboard bool
)

var diaryCmd = &cobra.Command{
	Use:   "diary <campaign>",
	Short: "Export the campaign as a markdown pilot diary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		syncCmd := commands.NewSyncCampaignCommand(GetSyncer(), args[0])
		result, err := syncCmd.Execute(ctx)
		if err != nil {
			return err
		}

		text := diary.Export(result.Model)
		switch {
		case diaryClipboard:
			if err := clipboard.WriteAll(text); err != nil {
				return fmt.Errorf("failed to copy diary: %w", err)
			}
			fmt.Println("diary copied to clipboard")
		case diaryOut != "":
			if err := os.WriteFile(diaryOut, []byte(text), 0644); err != nil {
				return fmt.Errorf("failed to write diary: %w", err)
			}
			fmt.Printf("diary written to %s\n", diaryOut)
		default:
			fmt.Print(text)
		}
		return nil
	},
}

func init() {
	diaryCmd.Flags().StringVarP(&diaryOut, "out", "o", "", "write the diary to a file instead of stdout")
	diaryCmd.Flags().BoolVar(&diaryClipboard, "clipboard", false, "copy the diary to the clipboard")
	rootCmd.AddCommand(diaryCmd)
}
