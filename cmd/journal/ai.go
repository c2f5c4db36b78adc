package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-journal/backend/internal/ai"
	"github.com/pkordes/travel-journal/backend/internal/service"
)

var aiCmd = &cobra.Command{
	Use:   "ai [task]",
	Short: "Ask for travel guidance about a step",
	Long: fmt.Sprintf(`Ask for guidance about a step of a trip. Tasks: %s.

The last step is used unless --step is given. By default the model is called
directly with OPENAI_API_KEY; with --api the request goes through a running
journal server instead.

Example:
  journal ai plan_days --trip <id>
  journal ai place_info --trip <id> --api http://localhost:8080`, taskList()),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		tripID, _ := cmd.Flags().GetString("trip")
		stepID, _ := cmd.Flags().GetString("step")
		apiURL, _ := cmd.Flags().GetString("api")

		assistant := a.Assistant
		if apiURL != "" {
			assistant = service.NewAssistant(a.Journal, a.Places, ai.NewProxyClient(apiURL, nil), a.Logger)
		}

		res, err := assistant.Ask(cmd.Context(), tripID, stepID, ai.Task(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Display())
		return nil
	},
}

func taskList() string {
	names := make([]string, len(ai.Tasks))
	for i, t := range ai.Tasks {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func initAICmd() {
	aiCmd.Flags().String("trip", "", "Trip ID (required)")
	aiCmd.Flags().String("step", "", "Step ID (defaults to the last step)")
	aiCmd.Flags().String("api", "", "Base URL of a journal server to proxy through")
	aiCmd.MarkFlagRequired("trip")
}
