package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// drums never get fretted
const drumChannel = 9

type OnNotes = map[uint8]bool

func CreateChordKey(notes []int) string {
	sorted := make([]int, len(notes))
	copy(sorted, notes)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for _, note := range sorted {
		parts = append(parts, fmt.Sprintf("%v", note))
	}
	return strings.Join(parts, "-")
}

// FromOnNotes builds the chord for the currently held keys. Notes that were
// already in prev keep their note records, and with them their positions.
func FromOnNotes(on OnNotes, prev model.Chord) model.Chord {
	byPitch := make(map[int]*model.Note)
	for _, n := range prev.Notes {
		byPitch[n.Pitch] = n
	}

	var c model.Chord
	for _, key := range util.SortedKeys(on) {
		if n, ok := byPitch[int(key)]; ok {
			c.Notes = append(c.Notes, n)
			continue
		}
		c.Notes = append(c.Notes, model.NewNote(int(key)))
	}
	return c
}

type Options struct {
	// Track selects a single track; negative means all tracks.
	Track int
	// Drums keeps notes on channel 10.
	Drums bool
}

// GetChords groups the note-ons of s by absolute tick. Chords come back in
// tick order, notes in the order they appear in the file.
func GetChords(s *smf.SMF, opts Options) []model.Chord {
	byTick := make(map[int64]*model.Chord)

	for i, events := range s.Tracks {
		if opts.Track >= 0 && opts.Track != i {
			continue
		}
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			if !event.Message.GetNoteOn(&channel, &key, &velocity) || velocity == 0 {
				continue
			}
			if channel == drumChannel && !opts.Drums {
				continue
			}
			c, ok := byTick[absTicks]
			if !ok {
				c = &model.Chord{Tick: absTicks}
				byTick[absTicks] = c
			}
			c.Notes = append(c.Notes, model.NewNote(int(key)))
		}
	}

	var chords []model.Chord
	for _, tick := range util.SortedKeys(byTick) {
		chords = append(chords, *byTick[tick])
	}
	return chords
}
