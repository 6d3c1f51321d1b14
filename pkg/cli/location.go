package cli

import (
	"fmt"
	"strings"

	"github.com/getmockd/ocpi/pkg/cli/internal/output"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/spf13/cobra"
)

var (
	locationEVSE      string
	locationConnector string
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Work with the partner's locations",
}

var locationGetCmd = &cobra.Command{
	Use:   "get <location-id>",
	Short: "Fetch a location, or one of its EVSEs or connectors",
	Example: `  ocpi location get LOC1
  ocpi location get LOC1 --evse NL*ABC*E1
  ocpi location get LOC1 --evse NL*ABC*E1 --connector 1 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if locationConnector != "" && locationEVSE == "" {
			return ErrConnectorNeedsEVSE
		}

		p, err := openPartner(cmd, true)
		if err != nil {
			return err
		}
		defer p.Close()

		ctx := cmd.Context()
		switch {
		case locationConnector != "":
			return printResponse(p.client.GetConnector(ctx, args[0], locationEVSE, locationConnector), printConnector)
		case locationEVSE != "":
			return printResponse(p.client.GetEVSE(ctx, args[0], locationEVSE), printEVSE)
		default:
			return printResponse(p.client.GetLocation(ctx, args[0]), printLocation)
		}
	},
}

func init() {
	locationGetCmd.Flags().StringVar(&locationEVSE, "evse", "", "EVSE uid within the location")
	locationGetCmd.Flags().StringVar(&locationConnector, "connector", "", "Connector id within the EVSE (requires --evse)")
	locationCmd.AddCommand(locationGetCmd)
	rootCmd.AddCommand(locationCmd)
}

func printLocation(l ocpi.Location) {
	fmt.Printf("Location %s\n", l.ID)
	printField("Name", l.Name)
	printField("Address", joinNonEmpty(", ", l.Address, l.PostalCode+" "+l.City, l.Country))
	printField("Type", l.Type)
	printField("Time zone", l.TimeZone)
	if l.Coordinates != nil {
		printField("Coordinates", l.Coordinates.Latitude+", "+l.Coordinates.Longitude)
	}
	printField("Last updated", formatTime(l.LastUpdated))
	if len(l.EVSEs) == 0 {
		return
	}
	fmt.Println()
	w := output.Table()
	_, _ = fmt.Fprintln(w, "EVSE\tSTATUS\tCONNECTORS")
	for _, e := range l.EVSEs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", e.UID, e.Status, len(e.Connectors))
	}
	_ = w.Flush()
}

func printEVSE(e ocpi.EVSE) {
	fmt.Printf("EVSE %s\n", e.UID)
	printField("EVSE ID", e.EVSEID)
	printField("Status", e.Status)
	printField("Last updated", formatTime(e.LastUpdated))
	if len(e.Connectors) == 0 {
		return
	}
	fmt.Println()
	w := output.Table()
	_, _ = fmt.Fprintln(w, "CONNECTOR\tSTANDARD\tPOWER\tMAX VOLTAGE\tMAX AMPERAGE")
	for _, c := range e.Connectors {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", c.ID, c.Standard, c.PowerType, c.MaxVoltage, c.MaxAmperage)
	}
	_ = w.Flush()
}

func printConnector(c ocpi.Connector) {
	fmt.Printf("Connector %s\n", c.ID)
	printField("Standard", c.Standard)
	printField("Format", c.Format)
	printField("Power type", c.PowerType)
	printField("Max voltage", fmt.Sprint(c.MaxVoltage))
	printField("Max amperage", fmt.Sprint(c.MaxAmperage))
	printField("Tariffs", strings.Join(c.TariffIDs, ", "))
	printField("Last updated", formatTime(c.LastUpdated))
}
