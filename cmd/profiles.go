package cmd

import (
	"errors"
	"fmt"

	"github.com/jsphweid/fretdex/tablature"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNoStore = errors.New("no DynamoDB endpoint configured (FRETDEX_DYNAMO_ENDPOINT)")

func init() {
	profilesCmd.AddCommand(profilesPutCmd)
	rootCmd.AddCommand(profilesCmd)
}

var profilesCmd = &cobra.Command{
	Use:   "profiles [name]",
	Short: "Lists instrument profiles or shows one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, name := range tablature.TemplateNames() {
				t, _ := tablature.Template(name)
				fmt.Fprintf(out, "%-14s %d strings, %d frets\n", name, t.NumStrings(), t.NumFrets())
			}
			return nil
		}

		cfg.Profile = args[0]
		tab, err := loadTablature()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(tab.Record(args[0]))
	},
}

var profilesPutCmd = &cobra.Command{
	Use:   "put <profile.yaml>",
	Short: "Stores a YAML profile in DynamoDB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := tablature.LoadYAML(args[0])
		if err != nil {
			return err
		}
		if profileName == "" {
			return errors.New("put needs --profile to name the stored profile")
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		if store == nil {
			return errNoStore
		}
		if err := store.PutProfile(tab.Record(profileName)); err != nil {
			return err
		}
		logger.Info("stored profile", "name", profileName)
		return nil
	},
}
