package cmd

import (
	"os"

	"github.com/jsphweid/fretdex/tuning"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	tuningName string
	tuningSave bool
)

func init() {
	tuningCmd.Flags().StringVar(&tuningName, "name", "", "profile name")
	tuningCmd.Flags().BoolVar(&tuningSave, "save", false, "store the profile in DynamoDB under --name")
	rootCmd.AddCommand(tuningCmd)
}

var tuningCmd = &cobra.Command{
	Use:   "tuning <file.musicxml>",
	Short: "Imports a tablature tuning from MusicXML",
	Long:  `Reads the first <staff-details> of a MusicXML file and prints it as a YAML profile.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		tab, err := tuning.ImportMusicXML(f)
		if err != nil {
			return err
		}
		record := tab.Record(tuningName)

		if tuningSave {
			store, err := openStore()
			if err != nil {
				return err
			}
			if store == nil {
				return errNoStore
			}
			if err := store.PutProfile(record); err != nil {
				return err
			}
			logger.Info("stored profile", "name", record.Name)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(record)
	},
}
