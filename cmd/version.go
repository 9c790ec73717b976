package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// set with -ldflags "-X github.com/rtzll/ytsum/cmd.version=..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rev, built := commit, date
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				switch {
				case s.Key == "vcs.revision" && rev == "":
					rev = s.Value
				case s.Key == "vcs.time" && built == "":
					built = s.Value
				}
			}
		}
		if rev == "" {
			rev = "unknown"
		}
		if built == "" {
			built = "unknown"
		}
		fmt.Printf("ytsum %s (%s, %s) %s %s/%s\n", version, rev, built, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
