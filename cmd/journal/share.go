package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-journal/backend/internal/format"
)

var shareCmd = &cobra.Command{
	Use:   "share [trip-id]",
	Short: "Print a share link for a trip",
	Long:  `Print a link that embeds the whole trip. Anyone opening it sees the trip read-only.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		link, err := a.Journal.ShareLink(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link.URL)
		return nil
	},
}

var decodeShareCmd = &cobra.Command{
	Use:   "decode [payload]",
	Short: "Show the trip inside a share payload",
	Long:  `Decode the payload of a share link (the part after "#share=") and print the trip. Nothing is stored.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trip, err := format.DecodeShare(args[0])
		if err != nil {
			return fmt.Errorf("invalid share payload: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), trip)
		}
		printTrip(cmd.OutOrStdout(), trip)
		return nil
	},
}

func initShareCmd() {
	decodeShareCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	shareCmd.AddCommand(decodeShareCmd)
}
