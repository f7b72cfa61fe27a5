package cmd

import (
	"fmt"

	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/fret"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/util"
	"github.com/spf13/cobra"
)

var (
	tabTrack    int
	tabDrums    bool
	tabMaxFiles int
	tabColumns  int
)

func init() {
	tabCmd.Flags().IntVar(&tabTrack, "track", -1, "only this track (default all)")
	tabCmd.Flags().BoolVar(&tabDrums, "drums", false, "include channel 10")
	tabCmd.Flags().IntVar(&tabMaxFiles, "max", 0, "max number of files per directory (0 = all)")
	tabCmd.Flags().IntVar(&tabColumns, "columns", 32, "chords per tab system")
	rootCmd.AddCommand(tabCmd)
}

var tabCmd = &cobra.Command{
	Use:   "tab <file.mid|dir>...",
	Short: "Writes tab for MIDI files",
	Long:  `Reads MIDI files, groups notes starting together into chords, frets them and prints plain text tab.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := loadTablature()
		if err != nil {
			return err
		}

		var paths []string
		for _, arg := range args {
			found, err := util.GatherAllMidiPaths(arg, tabMaxFiles)
			if err != nil {
				return err
			}
			paths = append(paths, found...)
		}

		out := cmd.OutOrStdout()
		assigner := fret.NewAssigner(logger)
		for i, path := range paths {
			logger.Info("processing midi file", "n", i+1, "of", len(paths), "path", path)
			parsed, err := midi.ReadMidiFile(path)
			if err != nil {
				logger.Warn("skipping file", "path", path, "error", err)
				continue
			}

			chords := chord.GetChords(parsed, chord.Options{Track: tabTrack, Drums: tabDrums})
			conflicts := 0
			for _, c := range chords {
				conflicts += assigner.FretChord(tab, c, fret.Direct).Conflicts
			}

			fmt.Fprintf(out, "# %s (%d chords, %d conflicts)\n", path, len(chords), conflicts)
			for start := 0; start < len(chords); start += tabColumns {
				end := util.Min(start+tabColumns, len(chords))
				if err := tab.RenderASCII(out, chords[start:end]); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
		}
		return nil
	},
}
