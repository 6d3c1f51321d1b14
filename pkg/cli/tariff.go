package cli

import (
	"fmt"

	"github.com/getmockd/ocpi/pkg/cli/internal/output"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/spf13/cobra"
)

var tariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Work with tariffs",
}

var tariffGetCmd = &cobra.Command{
	Use:   "get <tariff-id>",
	Short: "Fetch a tariff",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPartner(cmd, true)
		if err != nil {
			return err
		}
		defer p.Close()

		return printResponse(p.client.GetTariff(cmd.Context(), args[0]), printTariff)
	},
}

var tariffDeleteCmd = &cobra.Command{
	Use:   "delete <tariff-id>",
	Short: "Remove a tariff at the partner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPartner(cmd, true)
		if err != nil {
			return err
		}
		defer p.Close()

		if _, err := p.client.DeleteTariff(cmd.Context(), args[0]).Unpack(); err != nil {
			return err
		}
		return printResult(map[string]string{"deleted": args[0]}, func() {
			fmt.Printf("Deleted tariff %s\n", args[0])
		})
	},
}

func init() {
	tariffCmd.AddCommand(tariffGetCmd, tariffDeleteCmd)
	rootCmd.AddCommand(tariffCmd)
}

func printTariff(t ocpi.Tariff) {
	fmt.Printf("Tariff %s\n", t.ID)
	printField("Currency", t.Currency)
	printField("Type", t.Type)
	for _, alt := range t.AltText {
		printField("Text ("+alt.Language+")", alt.Text)
	}
	if t.StartDate != nil {
		printField("Valid from", formatTime(*t.StartDate))
	}
	if t.EndDate != nil {
		printField("Valid until", formatTime(*t.EndDate))
	}
	printField("Last updated", formatTime(t.LastUpdated))
	if len(t.Elements) == 0 {
		return
	}
	fmt.Println()
	w := output.Table()
	_, _ = fmt.Fprintln(w, "ELEMENT\tTYPE\tPRICE\tSTEP SIZE")
	for i, e := range t.Elements {
		for _, pc := range e.PriceComponents {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%.4f\t%d\n", i, pc.Type, pc.Price, pc.StepSize)
		}
	}
	_ = w.Flush()
}
