// Command journal manages the travel journal from a terminal. It reads the
// same configuration and state store as the API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-journal/backend/internal/app"
)

var rootCmd = &cobra.Command{
	Use:     "journal",
	Short:   "Plan trips, record steps and ask for travel guidance.",
	Long:    `journal edits the travel journal stored by the API server. Configuration comes from the environment (and .env), exactly as for the server.`,
	Version: fmt.Sprintf("v%s", app.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	SilenceUsage: true,
}

func initCmd() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log at debug level to stderr")

	initTripsCmd()
	initStepsCmd()
	initShareCmd()
	initAICmd()
	initFlightsCmd()
	initPlacesCmd()
	rootCmd.AddCommand(tripsCmd, stepsCmd, shareCmd, aiCmd, flightsCmd, placesCmd, migrateCmd, mcpCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
