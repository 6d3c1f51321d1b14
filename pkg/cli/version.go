package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/spf13/cobra"
)

// VersionOutput represents JSON output format
type VersionOutput struct {
	Version      string         `json:"version"`
	Commit       string         `json:"commit"`
	Date         string         `json:"date"`
	Go           string         `json:"go"`
	OS           string         `json:"os"`
	Arch         string         `json:"arch"`
	OCPIVersions []ocpi.Version `json:"ocpiVersions"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show ocpi version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version := Version
		commit := Commit
		date := BuildDate

		if info, ok := debug.ReadBuildInfo(); ok {
			if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
				version = info.Main.Version
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					if commit == "none" {
						commit = setting.Value
					}
				case "vcs.time":
					if date == "unknown" {
						date = setting.Value
					}
				}
			}
		}

		out := VersionOutput{
			Version:      version,
			Commit:       commit,
			Date:         date,
			Go:           runtime.Version(),
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			OCPIVersions: ocpi.SupportedVersions,
		}

		return printResult(out, func() {
			v := out.Version
			if len(v) > 0 && v[0] != 'v' && v != "dev" {
				v = "v" + v
			}
			fmt.Printf("ocpi %s (%s, %s)\n", v, out.Commit, out.Date)
			fmt.Printf("%s %s/%s\n", out.Go, out.OS, out.Arch)
			fmt.Printf("OCPI %v\n", out.OCPIVersions)
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
