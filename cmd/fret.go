package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jsphweid/fretdex/fret"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tablature"
	"github.com/jsphweid/fretdex/tuning"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fretCmd)
}

var fretCmd = &cobra.Command{
	Use:   "fret <pitch>...",
	Short: "Frets one chord",
	Long: `Frets one chord. Pitches are MIDI numbers (64) or note names (E4, Bb3, C#5).

  fretdex fret E2 B2 E3 G#3 B3 E4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := loadTablature()
		if err != nil {
			return err
		}
		chord, err := parseChord(args)
		if err != nil {
			return err
		}
		res := fret.NewAssigner(logger).FretChord(tab, chord, fret.Direct)
		logger.Debug("fretted chord", "changes", res.Changes, "conflicts", res.Conflicts)
		return printChord(cmd.OutOrStdout(), tab, chord)
	},
}

// parsePitch accepts a MIDI number or a note name like C#4, Bb3 or E2.
func parsePitch(s string) (int, error) {
	if p, err := strconv.Atoi(s); err == nil {
		if p < 0 || p > 127 {
			return 0, fmt.Errorf("pitch %d out of range 0..127", p)
		}
		return p, nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("could not parse pitch %q", s)
	}
	step, rest := s[:1], s[1:]
	alter := 0
	for len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		if rest[0] == '#' {
			alter++
		} else {
			alter--
		}
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("could not parse pitch %q", s)
	}
	pitch, ok := tuning.StepAltOctToPitch(step, alter, octave)
	if !ok {
		return 0, fmt.Errorf("could not parse pitch %q", s)
	}
	return pitch, nil
}

func parseChord(args []string) (model.Chord, error) {
	var pitches []int
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			if field == "" {
				continue
			}
			p, err := parsePitch(field)
			if err != nil {
				return model.Chord{}, err
			}
			pitches = append(pitches, p)
		}
	}
	return model.NewChord(pitches...), nil
}

func printChord(out io.Writer, tab *tablature.Tablature, chord model.Chord) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PITCH\tNOTE\tSTRING\tFRET\t")
	for _, n := range chord.Notes {
		if n.Conflict {
			fmt.Fprintf(w, "%d\t%s\t-\t-\tconflict\n", n.Pitch, tablature.PitchName(n.Pitch))
			continue
		}
		open := tablature.PitchName(tab.PositionToPitch(n.String.Value, 0))
		fmt.Fprintf(w, "%d\t%s\t%d (%s)\t%d\t\n", n.Pitch, tablature.PitchName(n.Pitch), n.String.Value+1, open, n.Fret.Value)
	}
	return w.Flush()
}
