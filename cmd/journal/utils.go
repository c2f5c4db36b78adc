package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkordes/travel-journal/backend/internal/app"
	"github.com/pkordes/travel-journal/backend/internal/config"
	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/format"
	"github.com/pkordes/travel-journal/backend/internal/logging"
)

var verbose bool

// openApp loads configuration and wires the journal. Logs go to stderr so
// stdout stays clean for command output and the MCP stdio transport.
func openApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger()

	a, err := app.New(ctx, cfg, log, app.Options{})
	if err != nil {
		return nil, nil, err
	}
	return a, func() { _ = a.Close() }, nil
}

func newLogger() *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	log, _ := logging.New(logging.Options{Level: level, Format: "console", Output: os.Stderr})
	return log
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTrips(w io.Writer, trips []domain.Trip, total int64) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDATES\tSTEPS\tVISIBILITY")
	for _, t := range trips {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", t.ID, t.Title, format.DateRange(t.StartDate, t.EndDate), len(t.Steps), t.Visibility)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d of %d trips\n", len(trips), total)
}

func printTrip(w io.Writer, t domain.Trip) {
	fmt.Fprintf(w, "%s  (%s)\n", t.Title, t.ID)
	fmt.Fprintf(w, "%s · %s\n", format.DateRange(t.StartDate, t.EndDate), t.Visibility)
	if len(t.Steps) == 0 {
		fmt.Fprintln(w, "No steps yet.")
		return
	}
	for i, s := range t.Steps {
		printStep(w, i+1, s)
	}
}

func printStep(w io.Writer, n int, s domain.Step) {
	fmt.Fprintf(w, "%2d. %s  (%s)\n", n, s.DisplayTitle(), s.ID)
	if s.Place.Label != "" {
		fmt.Fprintf(w, "    %s%s\n", s.Place.Label, coords(s.Place))
	}
	if s.ArrivalDate != "" || s.DepartureDate != "" {
		fmt.Fprintf(w, "    %s\n", format.DateRange(s.ArrivalDate, s.DepartureDate))
	}
	if notes := strings.TrimSpace(s.Notes); notes != "" {
		fmt.Fprintf(w, "    %s\n", notes)
	}
	if len(s.Photos) > 0 {
		fmt.Fprintf(w, "    %d photo(s)\n", len(s.Photos))
	}
}

func coords(p domain.Place) string {
	if !p.HasCoordinates() {
		return ""
	}
	return fmt.Sprintf(" [%.4f, %.4f]", *p.Lat, *p.Lng)
}
