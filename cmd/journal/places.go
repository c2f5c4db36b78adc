package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "Look up places",
}

var searchPlacesCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Geocode a place name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		places := a.Places.Search(cmd.Context(), strings.Join(args, " "))
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), places)
		}
		if len(places) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No places found.")
			return nil
		}
		for _, p := range places {
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", p.Label, coords(p))
		}
		return nil
	},
}

var wikiCmd = &cobra.Command{
	Use:   "wiki [title]",
	Short: "Print the Wikipedia summary used to ground AI answers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		sum := a.Places.WikiSummary(cmd.Context(), strings.Join(args, " "))
		if sum == nil {
			return errors.New("no summary found")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", sum.Title, sum.Extract)
		if sum.URL != nil {
			fmt.Fprintln(cmd.OutOrStdout(), *sum.URL)
		}
		return nil
	},
}

func initPlacesCmd() {
	placesCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	placesCmd.AddCommand(searchPlacesCmd, wikiCmd)
}
