package dfabench

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/dfabench/dfabench/internal/report"
)

type versionInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision,omitempty"`
	Go       string `json:"go"`
}

func buildInfo() versionInfo {
	v := versionInfo{Version: version, Go: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				v.Revision = s.Value
			}
		}
	}
	return v
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the dfabench version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := buildInfo()
			out := cmd.OutOrStdout()
			if flagJSON {
				return report.WriteJSON(out, v)
			}
			if v.Revision != "" {
				_, err := fmt.Fprintf(out, "dfabench %s (%s, %s)\n", v.Version, short(v.Revision), v.Go)
				return err
			}
			_, err := fmt.Fprintf(out, "dfabench %s (%s)\n", v.Version, v.Go)
			return err
		},
	})
}

func short(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
