package cli

import (
	"fmt"
	"strings"

	"github.com/getmockd/ocpi/pkg/cli/internal/output"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/spf13/cobra"
)

var (
	tokensOffset int
	tokensLimit  int

	authorizeType     string
	authorizeLocation string
	authorizeEVSEs    []string
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Work with the partner's token list",
}

var tokensListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPartner(cmd, true)
		if err != nil {
			return err
		}
		defer p.Close()

		page := ocpi.Page{Offset: tokensOffset, Limit: tokensLimit}
		tokens, err := p.client.GetTokens(cmd.Context(), page).Unpack()
		if err != nil {
			return err
		}
		if page.Limit > 0 && len(tokens) == page.Limit {
			output.Warn("page is full, more tokens may follow (--offset %d)", page.Offset+len(tokens))
		}
		return printResult(tokens, func() { printTokens(tokens) })
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Work with a single token",
}

var tokenAuthorizeCmd = &cobra.Command{
	Use:   "authorize <token-uid>",
	Short: "Request real-time authorization of a token",
	Example: `  ocpi token authorize 012345678
  ocpi token authorize 012345678 --type APP_USER --location LOC1 --evse E1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPartner(cmd, true)
		if err != nil {
			return err
		}
		defer p.Close()

		var refs *ocpi.LocationReferences
		if authorizeLocation != "" {
			refs = &ocpi.LocationReferences{LocationID: authorizeLocation, EVSEUIDs: authorizeEVSEs}
		}
		resp := p.client.PostTokenAuthorize(cmd.Context(), args[0], strings.ToUpper(authorizeType), refs)
		return printResponse(resp, printAuthorization)
	},
}

func init() {
	tokensListCmd.Flags().IntVar(&tokensOffset, "offset", 0, "Index of the first token")
	tokensListCmd.Flags().IntVar(&tokensLimit, "limit", 0, "Maximum number of tokens (partner default when 0)")
	tokensCmd.AddCommand(tokensListCmd)

	tokenAuthorizeCmd.Flags().StringVar(&authorizeType, "type", ocpi.TokenTypeRFID, "Token type: RFID, APP_USER, AD_HOC_USER, OTHER")
	tokenAuthorizeCmd.Flags().StringVar(&authorizeLocation, "location", "", "Location the authorization is for")
	tokenAuthorizeCmd.Flags().StringSliceVar(&authorizeEVSEs, "evse", nil, "EVSE uids within --location")
	tokenCmd.AddCommand(tokenAuthorizeCmd)

	rootCmd.AddCommand(tokensCmd, tokenCmd)
}

func printTokens(tokens []ocpi.Token) {
	if len(tokens) == 0 {
		fmt.Println("No tokens")
		return
	}
	w := output.Table()
	_, _ = fmt.Fprintln(w, "UID\tTYPE\tCONTRACT\tVALID\tWHITELIST")
	for _, t := range tokens {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", t.UID, t.Type, t.ContractID, t.Valid, t.Whitelist)
	}
	_ = w.Flush()
}

func printAuthorization(info ocpi.AuthorizationInfo) {
	fmt.Printf("Authorization: %s\n", info.Allowed)
	printField("Reference", info.AuthorizationReference)
	if info.Location != nil {
		printField("Location", info.Location.LocationID)
	}
	if info.Info != nil {
		printField("Info", info.Info.Text)
	}
}
