package fret

import (
	"log/slog"
	"sort"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tablature"
	"github.com/jsphweid/fretdex/util"
)

// sort key weight of a note with no string yet, i.e. |-1|
const unassignedSortString = 1

type Result struct {
	// Skipped is set when FretChord was entered while already running.
	Skipped   bool
	Changes   int
	Conflicts int
}

// Assigner carries the "fretting in progress" latch. A Sink that reacts to a
// change by fretting the chord again re-enters the same Assigner and the
// nested call does nothing. An Assigner is not safe for concurrent use.
type Assigner struct {
	Logger *slog.Logger

	running bool
}

func NewAssigner(logger *slog.Logger) *Assigner {
	return &Assigner{Logger: logger}
}

type snapshot struct {
	note     *model.Note
	idx      int
	pitch    int
	string   model.Opt
	fret     model.Opt
	conflict bool
}

func sortKey(s snapshot) int {
	str := unassignedSortString
	if s.string.Valid {
		str = util.Abs(s.string.Value)
	}
	return str*100000 - s.pitch*100 - s.idx
}

func takeSnapshot(chord model.Chord) []snapshot {
	res := make([]snapshot, 0, len(chord.Notes))
	for i, n := range chord.Notes {
		res = append(res, snapshot{
			note:     n,
			idx:      i,
			pitch:    n.Pitch,
			string:   n.String,
			fret:     n.Fret,
			conflict: n.Conflict,
		})
	}
	sort.SliceStable(res, func(i, j int) bool {
		return sortKey(res[i]) < sortKey(res[j])
	})
	return res
}

// heldByOther reports whether a note other than self currently sits on str.
func heldByOther(notes []snapshot, self int, str int) bool {
	for i, s := range notes {
		if i != self && s.string.Valid && s.string.Value == str {
			return true
		}
	}
	return false
}

func (a *Assigner) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// FretChord places every note of chord on the tablature, re-using existing
// placements wherever they still produce the note's pitch.
//
// Notes are visited from the highest string down, higher pitches first. A
// note that needs a new position gets the one PitchToPosition picks, unless
// another note of the chord is already on that string and the note's old
// string can still play it. A note whose string was already taken in this
// pass moves to the first free string (visual order) that can play it. Notes
// that cannot be fretted at all, or that run out of strings, are marked as
// conflicts; the pass always covers the whole chord.
//
// Every differing field is emitted to sink as a Change.
func (a *Assigner) FretChord(tab *tablature.Tablature, chord model.Chord, sink Sink) Result {
	if a.running {
		return Result{Skipped: true}
	}
	a.running = true
	defer func() { a.running = false }()

	var res Result
	emit := func(c Change) {
		res.Changes++
		sink.Emit(c)
	}

	notes := takeSnapshot(chord)
	used := make([]bool, tab.NumStrings())

	for i, s := range notes {
		newString, newFret := s.string.Value, s.fret.Value
		cur, placed := model.Position{String: s.string.Value, Fret: s.fret.Value}, s.string.Valid && s.fret.Valid

		if !placed || !tab.ValidPosition(cur) || tab.PositionToPitch(cur.String, cur.Fret) != s.pitch {
			// the top string can report fret == NumFrets for its last pitch
			pos, ok := tab.PitchToPosition(s.pitch)
			if !ok || !tab.ValidPosition(pos) {
				res.Conflicts++
				a.logger().Debug("fret: pitch outside tablature", "pitch", s.pitch, "string", pos.String, "fret", pos.Fret)
				if !s.conflict {
					emit(ConflictChange{Note: s.note, From: false, To: true})
				}
				if to := model.Some(pos.Fret); !s.fret.Equal(to) {
					emit(FretChange{Note: s.note, From: s.fret, To: to})
				}
				if to := model.Some(pos.String); !s.string.Equal(to) {
					emit(StringChange{Note: s.note, From: s.string, To: to})
				}
				continue
			}
			newString, newFret = pos.String, pos.Fret

			if heldByOther(notes, i, newString) && s.string.Valid {
				if f, ok := tab.FretForPosition(s.pitch, s.string.Value); ok {
					newString, newFret = s.string.Value, f
				}
			}
		}

		if used[newString] {
			found := false
			for str := 0; str < tab.NumStrings(); str++ {
				if used[str] {
					continue
				}
				if f, ok := tab.FretForPosition(s.pitch, str); ok {
					newString, newFret = str, f
					found = true
					break
				}
			}
			if !found {
				res.Conflicts++
				a.logger().Debug("fret: no free string", "pitch", s.pitch, "chord_size", len(notes))
				if !s.conflict {
					emit(ConflictChange{Note: s.note, From: false, To: true})
				}
				continue
			}
		}

		if s.conflict {
			emit(ConflictChange{Note: s.note, From: true, To: false})
		}
		if to := model.Some(newFret); !s.fret.Equal(to) {
			emit(FretChange{Note: s.note, From: s.fret, To: to})
		}
		if to := model.Some(newString); !s.string.Equal(to) {
			emit(StringChange{Note: s.note, From: s.string, To: to})
		}
		used[newString] = true
	}

	return res
}
