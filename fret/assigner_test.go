package fret

import (
	"testing"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tablature"
	"github.com/stretchr/testify/assert"
)

func guitar() *tablature.Tablature {
	return tablature.MustNew(13, []int{40, 45, 50, 55, 59, 64})
}

type recorder struct {
	changes []Change
}

func (r *recorder) Emit(c Change) {
	c.Apply()
	r.changes = append(r.changes, c)
}

func place(n *model.Note, str, fret int) *model.Note {
	n.String = model.Some(str)
	n.Fret = model.Some(fret)
	return n
}

func assertDistinctStrings(t *testing.T, chord model.Chord) {
	seen := map[int]bool{}
	for _, n := range chord.Notes {
		if n.Conflict {
			continue
		}
		if seen[n.String.Value] {
			t.Errorf("string %d used twice", n.String.Value)
		}
		seen[n.String.Value] = true
	}
}

func assertPitchesMatch(t *testing.T, tab *tablature.Tablature, chord model.Chord) {
	for _, n := range chord.Notes {
		if n.Conflict {
			continue
		}
		pos, ok := n.Position()
		if !ok {
			t.Errorf("pitch %d left unplaced", n.Pitch)
			continue
		}
		if got := tab.PositionToPitch(pos.String, pos.Fret); got != n.Pitch {
			t.Errorf("pitch %d placed at %v which plays %d", n.Pitch, pos, got)
		}
		if pos.Fret < 0 || pos.Fret >= tab.NumFrets() {
			t.Errorf("fret %d off the neck", pos.Fret)
		}
	}
}

func TestFretsOpenStrings(t *testing.T) {
	tab := guitar()
	chord := model.NewChord(40, 45, 50, 55, 59, 64)
	res := NewAssigner(nil).FretChord(tab, chord, Direct)

	assert := assert.New(t)
	assert.Equal(0, res.Conflicts)
	for i, n := range chord.Notes {
		assert.Equal(model.Some(5-i), n.String)
		assert.Equal(model.Some(0), n.Fret)
		assert.False(n.Conflict)
	}
}

func TestFullChordPlacement(t *testing.T) {
	chords := [][]int{
		{52, 53, 54},
		{48, 52, 55, 60, 64},
		{43, 47, 50, 55, 59, 67},
		{59, 60, 62, 64},
		{60, 61},
	}

	tab := guitar()
	for _, pitches := range chords {
		chord := model.NewChord(pitches...)
		NewAssigner(nil).FretChord(tab, chord, Direct)
		for _, n := range chord.Notes {
			assert.False(t, n.Conflict, "pitch %d in %v", n.Pitch, pitches)
		}
		assertDistinctStrings(t, chord)
		assertPitchesMatch(t, tab, chord)
	}
}

func TestSpreadsUnisonAcrossStrings(t *testing.T) {
	chord := model.NewChord(64, 64, 64)
	NewAssigner(nil).FretChord(guitar(), chord, Direct)

	// equal pitches are visited last-inserted first
	assert := assert.New(t)
	assert.Equal(model.Some(0), chord.Notes[2].String)
	assert.Equal(model.Some(1), chord.Notes[1].String)
	assert.Equal(model.Some(5), chord.Notes[1].Fret)
	assert.Equal(model.Some(2), chord.Notes[0].String)
	assert.Equal(model.Some(9), chord.Notes[0].Fret)
}

func TestOverflowConflict(t *testing.T) {
	chord := model.NewChord(40, 45, 50, 55, 59, 64, 65)
	res := NewAssigner(nil).FretChord(guitar(), chord, Direct)

	assert := assert.New(t)
	assert.Equal(1, res.Conflicts)
	// 65 takes the top string and pushes everyone down, so the low E is left over
	assert.True(chord.Notes[0].Conflict)
	for _, n := range chord.Notes[1:] {
		assert.False(n.Conflict)
	}
	assertDistinctStrings(t, chord)
	assertPitchesMatch(t, guitar(), chord)
}

func TestUnfrettablePitches(t *testing.T) {
	chord := model.NewChord(30, 90, 60)
	rec := &recorder{}
	res := NewAssigner(nil).FretChord(guitar(), chord, rec)

	assert := assert.New(t)
	assert.Equal(2, res.Conflicts)

	low, high, mid := chord.Notes[0], chord.Notes[1], chord.Notes[2]
	assert.True(low.Conflict)
	assert.Equal(model.Some(5), low.String)
	assert.Equal(model.Some(0), low.Fret)
	assert.True(high.Conflict)
	assert.Equal(model.Some(0), high.String)
	assert.Equal(model.Some(0), high.Fret)

	// conflicting notes do not claim a string
	assert.False(mid.Conflict)
	assert.Equal(model.Some(1), mid.String)
	assert.Equal(model.Some(1), mid.Fret)
}

func TestPitchOnePastTheNeckConflicts(t *testing.T) {
	tab := guitar()
	pos, ok := tab.PitchToPosition(77)
	assert.True(t, ok)
	assert.Equal(t, model.Position{String: 0, Fret: 13}, pos)

	chord := model.NewChord(77, 64)
	res := NewAssigner(nil).FretChord(tab, chord, Direct)

	assert := assert.New(t)
	assert.Equal(1, res.Conflicts)
	assert.True(chord.Notes[0].Conflict)

	// the conflicting 77 leaves the top string to 64
	assert.False(chord.Notes[1].Conflict)
	assert.Equal(model.Some(0), chord.Notes[1].String)
	assert.Equal(model.Some(0), chord.Notes[1].Fret)
	assertPitchesMatch(t, tab, chord)
}

func TestStability(t *testing.T) {
	tab := guitar()
	chord := model.NewChord(48, 52, 55, 60, 64)
	a := NewAssigner(nil)
	a.FretChord(tab, chord, Direct)

	rec := &recorder{}
	res := a.FretChord(tab, chord, rec)

	assert := assert.New(t)
	assert.Equal(0, res.Changes)
	assert.Empty(rec.changes)
}

func TestKeepsValidExistingPositions(t *testing.T) {
	tab := guitar()
	// 60 on the G string at fret 5 instead of the B string at fret 1
	chord := model.Chord{Notes: []*model.Note{place(model.NewNote(60), 2, 5)}}
	rec := &recorder{}
	NewAssigner(nil).FretChord(tab, chord, rec)

	assert := assert.New(t)
	assert.Empty(rec.changes)
	assert.Equal(model.Some(2), chord.Notes[0].String)
	assert.Equal(model.Some(5), chord.Notes[0].Fret)
}

func TestStaleNoteKeepsItsStringWhenTaken(t *testing.T) {
	tab := guitar()
	// pitch changed from 57 to 59 while on the G string; B is held by 60
	stale := place(model.NewNote(59), 2, 2)
	held := place(model.NewNote(60), 1, 1)
	chord := model.Chord{Notes: []*model.Note{stale, held}}
	rec := &recorder{}
	NewAssigner(nil).FretChord(tab, chord, rec)

	assert := assert.New(t)
	assert.Equal(model.Some(2), stale.String)
	assert.Equal(model.Some(4), stale.Fret)
	assert.Equal(model.Some(1), held.String)
	assert.Len(rec.changes, 1)
	assert.Equal("fret", rec.changes[0].Field())
}

func TestStaleNoteMovesWhenStringFree(t *testing.T) {
	tab := guitar()
	stale := place(model.NewNote(59), 2, 2)
	chord := model.Chord{Notes: []*model.Note{stale}}
	NewAssigner(nil).FretChord(tab, chord, Direct)

	assert := assert.New(t)
	assert.Equal(model.Some(1), stale.String)
	assert.Equal(model.Some(0), stale.Fret)
}

func TestOutOfProfilePositionIsRecomputed(t *testing.T) {
	n := place(model.NewNote(64), 7, 0)
	chord := model.Chord{Notes: []*model.Note{n}}
	NewAssigner(nil).FretChord(guitar(), chord, Direct)

	assert := assert.New(t)
	assert.Equal(model.Some(0), n.String)
	assert.Equal(model.Some(0), n.Fret)
}

func TestClearsResolvedConflict(t *testing.T) {
	n := model.NewNote(64)
	n.Conflict = true
	chord := model.Chord{Notes: []*model.Note{n}}
	rec := &recorder{}
	NewAssigner(nil).FretChord(guitar(), chord, rec)

	assert := assert.New(t)
	assert.False(n.Conflict)
	assert.Len(rec.changes, 3)
	assert.Equal(ConflictChange{Note: n, From: true, To: false}, rec.changes[0])
}

func TestReentrantCallIsNoop(t *testing.T) {
	tab := guitar()
	chord := model.NewChord(64, 59)
	a := NewAssigner(nil)

	var nested []Result
	sink := SinkFunc(func(c Change) {
		c.Apply()
		nested = append(nested, a.FretChord(tab, chord, Direct))
	})
	res := a.FretChord(tab, chord, sink)

	assert := assert.New(t)
	assert.False(res.Skipped)
	assert.Equal(4, res.Changes)
	assert.Len(nested, 4)
	for _, r := range nested {
		assert.True(r.Skipped)
	}

	// the latch is released afterwards
	assert.False(a.FretChord(tab, chord, Direct).Skipped)
}

func TestChangesRevert(t *testing.T) {
	chord := model.NewChord(52)
	rec := &recorder{}
	NewAssigner(nil).FretChord(guitar(), chord, rec)
	for i := len(rec.changes) - 1; i >= 0; i-- {
		rec.changes[i].Revert()
	}

	assert := assert.New(t)
	assert.Equal(model.None, chord.Notes[0].String)
	assert.Equal(model.None, chord.Notes[0].Fret)
}
