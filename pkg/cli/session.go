package cli

import (
	"fmt"

	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Work with charging sessions",
}

var sessionGetCmd = &cobra.Command{
	Use:   "get <session-id>",
	Short: "Fetch a charging session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPartner(cmd, true)
		if err != nil {
			return err
		}
		defer p.Close()

		return printResponse(p.client.GetSession(cmd.Context(), args[0]), printSession)
	},
}

func init() {
	sessionCmd.AddCommand(sessionGetCmd)
	rootCmd.AddCommand(sessionCmd)
}

func printSession(s ocpi.Session) {
	fmt.Printf("Session %s\n", s.ID)
	printField("Status", s.Status)
	printField("Location", joinNonEmpty(" / ", s.LocationID, s.EVSEUID, s.ConnectorID))
	printField("Started", formatTime(s.StartDateTime))
	if s.EndDateTime != nil {
		printField("Ended", formatTime(*s.EndDateTime))
	}
	printField("Energy", fmt.Sprintf("%.3f kWh", s.KWh))
	printField("Total cost", formatPrice(s.TotalCost, s.Currency))
	if s.CdrToken != nil {
		printField("Token", s.CdrToken.UID+" ("+s.CdrToken.Type+")")
	}
	printField("Last updated", formatTime(s.LastUpdated))
}
