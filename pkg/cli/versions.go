package cli

import (
	"fmt"

	"github.com/getmockd/ocpi/pkg/cli/internal/output"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/spf13/cobra"
)

// VersionsOutput is the JSON form of `ocpi versions`.
type VersionsOutput struct {
	Versions []ocpi.VersionInfo  `json:"versions"`
	Details  ocpi.VersionDetails `json:"details"`
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Show the partner's OCPI versions and the endpoints of the chosen one",
	Long: `Fetches the partner's versions document, picks --version or the newest
version both sides support, and lists the module endpoints of that version.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPartner(cmd, false)
		if err != nil {
			return err
		}
		defer p.Close()

		if p.discovery == nil || p.cfg.VersionsURL == "" {
			return ErrNoVersionsURL
		}

		ctx := cmd.Context()
		versions, err := p.discovery.Versions(ctx)
		if err != nil {
			return err
		}
		details, err := p.discovery.Details(ctx, ocpi.Version(p.cfg.Version))
		if err != nil {
			return err
		}

		out := VersionsOutput{Versions: versions, Details: details}
		return printResult(out, func() {
			fmt.Println("Versions:")
			for _, v := range versions {
				marker := " "
				if v.Version == details.Version {
					marker = "*"
				}
				support := ""
				if !v.Version.IsSupported() {
					support = "  (not supported by this client)"
				}
				fmt.Printf(" %s %-7s %s%s\n", marker, v.Version, v.URL, support)
			}
			fmt.Println()
			fmt.Printf("Endpoints of %s:\n", details.Version)
			w := output.Table()
			_, _ = fmt.Fprintln(w, "MODULE\tROLE\tURL")
			for _, ep := range details.Endpoints {
				role := string(ep.Role)
				if role == "" {
					role = "-"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", ep.Identifier, role, ep.URL)
			}
			_ = w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}
