package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/ytsum/internal"
)

// serveCmd runs the web form
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the summarize web form",
	Example: `  # Listen on the configured address (default :5000)
  ytsum serve

  # Listen elsewhere
  ytsum serve --addr 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ApplyOpenAIFlags(cmd, config); err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			config.Addr = addr
		}

		app, log, closeLog, err := newApp()
		if err != nil {
			return err
		}
		defer closeLog()

		if err := app.EnsureDownloadDir(); err != nil {
			return err
		}
		internal.InstallYtDlp(cmd.Context())

		srv, err := internal.NewServer(app, log)
		if err != nil {
			return err
		}

		go func() {
			<-cmd.Context().Done()
			log.Info().Msg("shutting down")
			if err := srv.Shutdown(); err != nil {
				log.Error().Err(err).Msg("shutdown failed")
			}
		}()

		return srv.Listen(config.Addr)
	},
}

func init() {
	internal.AddOpenAIFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :5000)")
	rootCmd.AddCommand(serveCmd)
}
