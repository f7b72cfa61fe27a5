// Package tablature describes a fretted instrument (fret count and open
// string pitches) and converts between pitches and string/fret positions.
//
// Strings are stored internally from the lowest-pitched (0) to the
// highest-pitched (n-1), but every exported method takes and returns visual
// string indices: 0 is the highest-pitched string, n-1 the lowest.
package tablature

import (
	"errors"
	"fmt"

	"github.com/jsphweid/fretdex/model"
)

var (
	ErrNoStrings    = errors.New("tablature needs at least one string")
	ErrBadFrets     = errors.New("fret count must not be negative")
	ErrBadPitch     = errors.New("string pitch out of range 0..127")
	ErrNotAscending = errors.New("string pitches must strictly increase from lowest to highest")
)

type Tablature struct {
	frets   int
	strings []int
}

// New builds a tablature from a fret count and the open pitch of each string,
// lowest-pitched string first.
func New(frets int, strings []int) (*Tablature, error) {
	if frets < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadFrets, frets)
	}
	if len(strings) == 0 {
		return nil, ErrNoStrings
	}
	for i, p := range strings {
		if p < 0 || p > 127 {
			return nil, fmt.Errorf("%w: string %d is %d", ErrBadPitch, i, p)
		}
		if i > 0 && p <= strings[i-1] {
			return nil, fmt.Errorf("%w: string %d (%d) <= string %d (%d)", ErrNotAscending, i, p, i-1, strings[i-1])
		}
	}
	t := &Tablature{frets: frets, strings: make([]int, len(strings))}
	copy(t.strings, strings)
	return t, nil
}

// MustNew is New for package-level templates.
func MustNew(frets int, strings []int) *Tablature {
	t, err := New(frets, strings)
	if err != nil {
		panic("invalid tablature: " + err.Error())
	}
	return t
}

func (t *Tablature) NumStrings() int {
	return len(t.strings)
}

func (t *Tablature) NumFrets() int {
	return t.frets
}

// Strings returns a copy of the open pitches, lowest string first.
func (t *Tablature) Strings() []int {
	res := make([]int, len(t.strings))
	copy(res, t.strings)
	return res
}

func (t *Tablature) open(visual int) int {
	return t.strings[len(t.strings)-1-visual]
}

// PitchToPosition finds a string and fret for pitch, always on the highest
// string that can reach it, even when a lower string would need a smaller
// fret.
//
// If the pitch cannot be fretted it returns false together with a fallback:
// fret 0 on the highest string when the pitch is too high, fret 0 on the
// lowest string when it is too low.
func (t *Tablature) PitchToPosition(pitch int) (model.Position, bool) {
	n := len(t.strings)
	if pitch > t.strings[n-1]+t.frets {
		return model.Position{String: 0, Fret: 0}, false
	}
	for i := n - 1; i >= 0; i-- {
		if pitch >= t.strings[i] {
			return model.Position{String: n - 1 - i, Fret: pitch - t.strings[i]}, true
		}
	}
	return model.Position{String: n - 1, Fret: 0}, false
}

// PositionToPitch does no bounds checking; see ValidPosition.
func (t *Tablature) PositionToPitch(str, fret int) int {
	return t.open(str) + fret
}

// FretForPosition returns the fret playing pitch on the given string, or
// false if the string does not exist or the fret would be off the neck.
func (t *Tablature) FretForPosition(pitch, str int) (int, bool) {
	if str < 0 || str >= len(t.strings) {
		return 0, false
	}
	fret := pitch - t.open(str)
	if fret < 0 || fret >= t.frets {
		return 0, false
	}
	return fret, true
}

func (t *Tablature) ValidPosition(p model.Position) bool {
	return p.String >= 0 && p.String < len(t.strings) && p.Fret >= 0 && p.Fret < t.frets
}
