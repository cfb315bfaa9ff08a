package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"skylog/internal/application/commands"
)

var (
	annotateBirthDate  string
	annotateBirthPlace string
	annotateNotes      string
	annotatePhotoPath  string
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <serial>",
	Short: "Store personal metadata for a pilot",
	Long: `Store birth date, birthplace, notes and a portrait path for a pilot,
keyed by serial number. Flags left unset keep their stored value, so partial
updates are safe. Annotations survive campaign re-syncs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid serial %q: %w", args[0], err)
		}

		ctx := context.Background()
		annotateCmd := commands.NewAnnotatePilotCommand(GetStore(), serial)
		annotateCmd.BirthDate = annotateBirthDate
		annotateCmd.BirthPlace = annotateBirthPlace
		annotateCmd.Notes = annotateNotes
		annotateCmd.PhotoPath = annotatePhotoPath

		result, err := annotateCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("annotation stored for serial %d\n", result.Record.Serial)
		return nil
	},
}

func init() {
	annotateCmd.Flags().StringVar(&annotateBirthDate, "birth-date", "", "birth date, DD/MM/YYYY")
	annotateCmd.Flags().StringVar(&annotateBirthPlace, "birth-place", "", "birthplace")
	annotateCmd.Flags().StringVar(&annotateNotes, "notes", "", "free-form notes")
	annotateCmd.Flags().StringVar(&annotatePhotoPath, "photo", "", "path to a portrait image")
	rootCmd.AddCommand(annotateCmd)
}
