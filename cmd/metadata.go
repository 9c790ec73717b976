package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytsum/internal"
)

// metadataCmd represents the metadata command
var metadataCmd = &cobra.Command{
	Use:   "metadata [URL]",
	Short: "Get metadata of a video, including the sanitized file name",
	Example: `  # Get metadata from YouTube video
  ytsum metadata "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Format output as pretty JSON
  ytsum metadata tAP1eZYEuKA --pretty`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, closeLog, err := newApp()
		if err != nil {
			return err
		}
		defer closeLog()

		internal.InstallYtDlp(cmd.Context())

		metadata, err := app.Metadata(cmd.Context(), internal.ParseArg(args[0]))
		if err != nil {
			return err
		}

		out := struct {
			*internal.VideoMetadata
			SafeTitle string `json:"safe_title"`
		}{metadata, internal.SanitizeTitle(metadata.Title)}

		var jsonData []byte
		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			jsonData, err = json.MarshalIndent(out, "", "  ")
		} else {
			jsonData, err = json.Marshal(out)
		}
		if err != nil {
			return fmt.Errorf("error converting metadata to JSON: %w", err)
		}

		if outputFile, _ := cmd.Flags().GetString("output"); outputFile != "" {
			return os.WriteFile(outputFile, jsonData, 0644)
		}

		fmt.Println(string(jsonData))
		return nil
	},
}

func init() {
	metadataCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	metadataCmd.Flags().Bool("pretty", false, "Format output as pretty JSON")
	rootCmd.AddCommand(metadataCmd)
}
