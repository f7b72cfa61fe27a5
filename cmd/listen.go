package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/bep/debounce"
	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/fret"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tablature"
	"github.com/jsphweid/fretdex/undo"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	listenPort     int
	listenPortName string
)

func init() {
	listenCmd.Flags().IntVar(&listenPort, "port", 0, "MIDI in port number")
	listenCmd.Flags().StringVar(&listenPortName, "port-name", "", "MIDI in port name, overrides --port")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Frets chords played on a MIDI keyboard",
	Long:  `Listens to a MIDI in port and prints the fretting of the held keys each time they settle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := loadTablature()
		if err != nil {
			return err
		}

		defer midi.CloseDriver()
		in, err := midi.InPort(listenPort)
		if listenPortName != "" {
			in, err = midi.FindInPort(listenPortName)
		}
		if err != nil {
			return fmt.Errorf("can't find MIDI in port: %w", err)
		}

		held := newHeldChord(tab, cmd.OutOrStdout())
		debounced := debounce.New(cfg.Settle)

		stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				held.press(key)
			case msg.GetNoteEnd(&ch, &key):
				held.release(key)
			default:
				return
			}
			debounced(held.settle)
		})
		if err != nil {
			return fmt.Errorf("listening to %v: %w", in, err)
		}
		defer stop()

		logger.Info("listening for notes", "port", in.String())
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		return nil
	},
}

// heldChord is the chord under the player's fingers. Keys that stay down
// keep their note records between settles, so the assigner leaves them where
// they are.
type heldChord struct {
	mu       sync.Mutex
	tab      *tablature.Tablature
	out      io.Writer
	on       chord.OnNotes
	current  model.Chord
	lastKey  string
	assigner *fret.Assigner
	log      *undo.Log
}

func newHeldChord(tab *tablature.Tablature, out io.Writer) *heldChord {
	log := undo.NewLog()
	log.OnChange = func(c fret.Change) {
		logger.Debug("note changed", "pitch", c.Target().Pitch, "field", c.Field())
	}
	return &heldChord{
		tab:      tab,
		out:      out,
		on:       make(chord.OnNotes),
		assigner: fret.NewAssigner(logger),
		log:      log,
	}
}

func (h *heldChord) press(key uint8) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.on[key] = true
}

func (h *heldChord) release(key uint8) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.on, key)
}

func (h *heldChord) settle() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = chord.FromOnNotes(h.on, h.current)
	key := chord.CreateChordKey(h.current.Pitches())
	if key == h.lastKey {
		return
	}
	h.lastKey = key
	if len(h.current.Notes) == 0 {
		return
	}

	tx, res := h.log.FretChord(h.assigner, h.tab, h.current)
	if tx != nil {
		logger.Debug("fretted held chord", "transaction", tx.ID, "changes", res.Changes, "conflicts", res.Conflicts)
	}
	printChord(h.out, h.tab, h.current)
	fmt.Fprintln(h.out)
}
