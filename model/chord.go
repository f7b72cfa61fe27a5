package model

// Opt is an int that may be unset. Strings and frets of a note that has not
// been placed yet are None.
type Opt struct {
	Value int
	Valid bool
}

var None = Opt{}

func Some(v int) Opt {
	return Opt{Value: v, Valid: true}
}

func (o Opt) Equal(other Opt) bool {
	if o.Valid != other.Valid {
		return false
	}
	return !o.Valid || o.Value == other.Value
}

// Position is a (string, fret) pair. String is a visual index: 0 is the
// highest-pitched string.
type Position struct {
	String int `json:"string"`
	Fret   int `json:"fret"`
}

type Note struct {
	Pitch    int
	String   Opt
	Fret     Opt
	Conflict bool
}

func NewNote(pitch int) *Note {
	return &Note{Pitch: pitch}
}

// Position returns the note's current placement, if both halves are set.
func (n *Note) Position() (Position, bool) {
	if !n.String.Valid || !n.Fret.Valid {
		return Position{}, false
	}
	return Position{String: n.String.Value, Fret: n.Fret.Value}, true
}

type Chord struct {
	Tick  int64
	Notes []*Note
}

func NewChord(pitches ...int) Chord {
	var c Chord
	for _, p := range pitches {
		c.Notes = append(c.Notes, NewNote(p))
	}
	return c
}

func (c Chord) Pitches() []int {
	res := make([]int, 0, len(c.Notes))
	for _, n := range c.Notes {
		res = append(res, n.Pitch)
	}
	return res
}
