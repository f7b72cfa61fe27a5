package cmd

import (
	"net/http"

	"github.com/jsphweid/fretdex/server"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the fretting HTTP API",
	Long:  `Serves POST /fret, GET /profiles, GET /profiles/{name} and POST /tuning.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		var source server.ProfileSource
		if store != nil {
			source = store
		}

		logger.Info("listening", "addr", cfg.ListenAddr)
		return http.ListenAndServe(cfg.ListenAddr, server.New(source, logger).Router())
	},
}
