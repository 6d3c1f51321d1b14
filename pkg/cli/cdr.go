package cli

import (
	"fmt"

	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/spf13/cobra"
)

var cdrCmd = &cobra.Command{
	Use:   "cdr",
	Short: "Work with charge detail records",
}

var cdrGetCmd = &cobra.Command{
	Use:   "get <cdr-id>",
	Short: "Fetch a charge detail record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPartner(cmd, true)
		if err != nil {
			return err
		}
		defer p.Close()

		return printResponse(p.client.GetCDR(cmd.Context(), args[0]), printCDR)
	},
}

func init() {
	cdrCmd.AddCommand(cdrGetCmd)
	rootCmd.AddCommand(cdrCmd)
}

func printCDR(c ocpi.CDR) {
	fmt.Printf("CDR %s\n", c.ID)
	printField("Session", c.SessionID)
	printField("Period", formatTime(c.StartDateTime)+" - "+formatTime(c.EndDateTime))
	printField("Energy", fmt.Sprintf("%.3f kWh", c.TotalEnergy))
	printField("Time", fmt.Sprintf("%.2f h", c.TotalTime))
	printField("Total cost", formatPrice(&c.TotalCost, c.Currency))
	printField("Auth method", c.AuthMethod)
	printField("Last updated", formatTime(c.LastUpdated))
}
