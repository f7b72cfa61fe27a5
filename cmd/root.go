package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/db"
	"github.com/jsphweid/fretdex/logging"
	"github.com/jsphweid/fretdex/server"
	"github.com/jsphweid/fretdex/tablature"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	profileName string
	profileFile string
	debug       bool

	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "fretdex",
	Short: "Places notes on strings and frets",
	Long:  `Places notes on the strings and frets of a fretted instrument and flags the ones that don't fit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if debug {
			cfg.LogLevel = "debug"
		}
		if profileName != "" {
			cfg.Profile = profileName
		}
		logger = logging.Init(cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "instrument profile name (default guitar)")
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile-file", "", "YAML instrument profile, overrides --profile")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
}

// openStore returns nil when no DynamoDB endpoint is configured.
func openStore() (*db.Store, error) {
	if cfg.Dynamo.Endpoint == "" {
		return nil, nil
	}
	return db.NewStore(cfg.Dynamo.Endpoint, cfg.Dynamo.Region, cfg.Dynamo.Table)
}

func loadTablature() (*tablature.Tablature, error) {
	if profileFile != "" {
		return tablature.LoadYAML(profileFile)
	}
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	// a nil *db.Store must not become a non-nil interface
	var source server.ProfileSource
	if store != nil {
		source = store
	}
	tab, err := server.ResolveProfile(source, cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return tab, nil
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
