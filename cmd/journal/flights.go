package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-journal/backend/internal/flights"
)

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Look up flight offers",
}

var searchFlightsCmd = &cobra.Command{
	Use:   "search",
	Short: "Search flight offers",
	Long: `Search flight offers with the configured AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET.

Example:
  journal flights search --origin SYD --destination KIX --date 2025-04-01 --adults 2 --non-stop`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, done, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		p := flights.SearchParams{}
		p.Origin, _ = cmd.Flags().GetString("origin")
		p.Destination, _ = cmd.Flags().GetString("destination")
		p.DepartureDate, _ = cmd.Flags().GetString("date")
		p.ReturnDate, _ = cmd.Flags().GetString("return")
		p.Adults, _ = cmd.Flags().GetInt("adults")
		p.NonStop, _ = cmd.Flags().GetBool("non-stop")
		p.CurrencyCode, _ = cmd.Flags().GetString("currency")
		p.Max, _ = cmd.Flags().GetInt("max")

		offers, err := a.Flights.Search(cmd.Context(), p)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), offers)
		}
		printOffers(cmd.OutOrStdout(), offers)
		return nil
	},
}

func printOffers(w io.Writer, offers []flights.Offer) {
	if len(offers) == 0 {
		fmt.Fprintln(w, "No offers found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRICE\tCARRIERS\tROUTE\tSTOPS")
	for _, o := range offers {
		price := "?"
		if o.Price != nil {
			price = fmt.Sprintf("%.2f %s", *o.Price, o.Currency)
		}
		var routes, stops []string
		for _, it := range o.Itineraries {
			var hops []string
			for i, s := range it.Segments {
				if i == 0 {
					hops = append(hops, s.From)
				}
				hops = append(hops, s.To)
			}
			routes = append(routes, strings.Join(hops, "-"))
			stops = append(stops, fmt.Sprint(it.StopsTotal))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", price, strings.Join(o.ValidatingAirlineCodes, ","), strings.Join(routes, " / "), strings.Join(stops, "/"))
	}
	tw.Flush()
}

func initFlightsCmd() {
	f := searchFlightsCmd.Flags()
	f.String("origin", "", "Origin IATA code (required)")
	f.String("destination", "", "Destination IATA code (required)")
	f.String("date", "", "Departure date, YYYY-MM-DD (required)")
	f.String("return", "", "Return date, YYYY-MM-DD")
	f.Int("adults", flights.DefaultAdults, "Number of adults")
	f.Bool("non-stop", false, "Only non-stop flights")
	f.String("currency", "", "Currency code")
	f.Int("max", flights.DefaultMax, "Maximum number of offers")
	f.BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	searchFlightsCmd.MarkFlagRequired("origin")
	searchFlightsCmd.MarkFlagRequired("destination")
	searchFlightsCmd.MarkFlagRequired("date")

	flightsCmd.AddCommand(searchFlightsCmd)
}
