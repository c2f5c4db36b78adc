package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

var (
	pageFlag   int
	limitFlag  int
	jsonOutput bool
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Manage trips",
	Long:  `Create, list, show and delete trips.`,
}

var listTripsCmd = &cobra.Command{
	Use:   "list",
	Short: "List trips, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		p := domain.NewPaginationParams(&pageFlag, &limitFlag)
		trips, total, err := a.Journal.ListTrips(cmd.Context(), p)
		if err != nil {
			return fmt.Errorf("failed to list trips: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), trips)
		}
		if len(trips) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No trips yet.")
			return nil
		}
		printTrips(cmd.OutOrStdout(), trips, total)
		return nil
	},
}

var createTripCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a trip",
	Long:  `Create a private trip. Without a title the trip is called "New Trip".`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		f := domain.TripFields{}
		if len(args) == 1 {
			f.Title = args[0]
		}
		f.StartDate, _ = cmd.Flags().GetString("start")
		f.EndDate, _ = cmd.Flags().GetString("end")

		trip, err := a.Journal.CreateTrip(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("failed to create trip: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), trip)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created trip %s (%s)\n", trip.Title, trip.ID)
		return nil
	},
}

var showTripCmd = &cobra.Command{
	Use:   "show [trip-id]",
	Short: "Show a trip and its steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		trip, err := a.Journal.GetTrip(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), trip)
		}
		printTrip(cmd.OutOrStdout(), trip)
		return nil
	},
}

var deleteTripCmd = &cobra.Command{
	Use:   "delete [trip-id]",
	Short: "Delete a trip and all of its steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		if err := a.Journal.DeleteTrip(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted trip %s\n", args[0])
		return nil
	},
}

func initTripsCmd() {
	tripsCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")

	listTripsCmd.Flags().IntVar(&pageFlag, "page", 1, "Page number")
	listTripsCmd.Flags().IntVar(&limitFlag, "limit", 20, "Trips per page (max 100)")

	createTripCmd.Flags().String("start", "", "Start date")
	createTripCmd.Flags().String("end", "", "End date")

	tripsCmd.AddCommand(listTripsCmd, createTripCmd, showTripCmd, deleteTripCmd)
}
