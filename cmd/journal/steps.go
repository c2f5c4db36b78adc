package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/photo"
)

var tripIDFlag string

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Manage the steps of a trip",
	Long:  `Add and delete steps. A step needs a place: either search with --place or give --label, --lat and --lng.`,
}

var addStepCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a step to a trip",
	Long: `Append a step to a trip.

With --place the first search result is used. Otherwise --lat and --lng are
required and --label names the place (defaults to "Current location").

Example:
  journal steps add --trip <id> --place "Kyoto" --arrive 2025-04-02 --photo temple.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		ns := domain.NewStep{}
		ns.ArrivalDate, _ = cmd.Flags().GetString("arrive")
		ns.DepartureDate, _ = cmd.Flags().GetString("depart")
		ns.Notes, _ = cmd.Flags().GetString("notes")

		query, _ := cmd.Flags().GetString("place")
		switch {
		case query != "":
			places := a.Places.Search(cmd.Context(), query)
			if len(places) == 0 {
				return fmt.Errorf("no place found for %q", query)
			}
			ns.Place = &places[0]
		case cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng"):
			lat, _ := cmd.Flags().GetFloat64("lat")
			lng, _ := cmd.Flags().GetFloat64("lng")
			p := domain.CurrentLocation(lat, lng)
			if label, _ := cmd.Flags().GetString("label"); label != "" {
				p.Label = label
			}
			ns.Place = &p
		default:
			return errors.New("pick a place: use --place, or --lat and --lng")
		}

		files, _ := cmd.Flags().GetStringSlice("photo")
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read photo: %w", err)
			}
			p, err := photo.Encode(filepath.Base(path), data, photo.Options{MaxDimension: a.Config.PhotoMaxDimension})
			if err != nil {
				return err
			}
			ns.Photos = append(ns.Photos, p)
		}

		step, err := a.Journal.AddStep(cmd.Context(), tripIDFlag, ns)
		if err != nil {
			return fmt.Errorf("failed to add step: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added step %s (%s)\n", step.DisplayTitle(), step.ID)
		return nil
	},
}

var deleteStepCmd = &cobra.Command{
	Use:   "delete [step-id]",
	Short: "Remove a step from a trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		if err := a.Journal.DeleteStep(cmd.Context(), tripIDFlag, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted step %s\n", args[0])
		return nil
	},
}

func initStepsCmd() {
	stepsCmd.PersistentFlags().StringVar(&tripIDFlag, "trip", "", "Trip ID (required)")
	stepsCmd.MarkPersistentFlagRequired("trip")

	addStepCmd.Flags().String("place", "", "Search for the place and use the first match")
	addStepCmd.Flags().String("label", "", "Place label when giving coordinates")
	addStepCmd.Flags().Float64("lat", 0, "Latitude")
	addStepCmd.Flags().Float64("lng", 0, "Longitude")
	addStepCmd.Flags().String("arrive", "", "Arrival date")
	addStepCmd.Flags().String("depart", "", "Departure date")
	addStepCmd.Flags().String("notes", "", "Notes")
	addStepCmd.Flags().StringSlice("photo", nil, "Image file to attach (repeatable, at most 6)")

	stepsCmd.AddCommand(addStepCmd, deleteStepCmd)
}
