package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// pathsCmd prints every location ytsum reads or writes
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show the config, log and download locations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		downloadDir, err := filepath.Abs(config.DownloadDir)
		if err != nil {
			downloadDir = config.DownloadDir
		}

		rows := [][2]string{
			{"Config file", filepath.Join(config.ConfigDir, "config.toml")},
			{"Data directory", config.DataDir},
			{"Log file", filepath.Join(config.CacheDir, "ytsum.log")},
			{"Download directory", downloadDir},
		}
		for _, row := range rows {
			fmt.Printf("%-20s %s\n", row[0]+":", row[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
