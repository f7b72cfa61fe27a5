// Package tuning turns MusicXML staff tuning (step, alter, octave per line)
// into string pitches for a tablature.
package tuning

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tablature"
)

// MusicXML carries no fret count; this is what imported tablatures get.
const DefaultFrets = 25

// semitones above C of A..G
var stepTable = [7]int{9, 11, 0, 2, 4, 5, 7}

// StepAltOctToPitch converts a diatonic step letter, a semitone alteration
// and an octave to a MIDI pitch. It returns false for an unknown step or a
// pitch outside 0..127.
func StepAltOctToPitch(step string, alter, octave int) (int, bool) {
	if len(step) != 1 {
		return 0, false
	}
	istep := int(step[0]) - 'A'
	if istep < 0 || istep > 6 {
		return 0, false
	}
	pitch := stepTable[istep] + alter + (octave+1)*12
	if pitch < 0 || pitch > 127 {
		return 0, false
	}
	return pitch, true
}

// Apply returns a copy of table with the payload applied. A positive
// StaffLines resizes the table (zero filled) first. Entries with a line
// outside the table or an invalid pitch are skipped.
func Apply(table []int, p model.TuningPayload) []int {
	res := make([]int, len(table))
	copy(res, table)
	if p.StaffLines > 0 {
		res = make([]int, p.StaffLines)
	} else if p.StaffLines < 0 {
		slog.Debug("tuning: ignoring staff lines", "staff_lines", p.StaffLines)
	}

	for _, e := range p.Tunings {
		if e.Line < 1 || e.Line > len(res) {
			slog.Debug("tuning: line out of range", "line", e.Line, "strings", len(res))
			continue
		}
		pitch, ok := StepAltOctToPitch(e.Step, e.Alter, e.Octave)
		if !ok {
			slog.Debug("tuning: invalid string tuning", "line", e.Line, "step", e.Step, "alter", e.Alter, "octave", e.Octave)
			continue
		}
		res[e.Line-1] = pitch
	}
	return res
}

// Import builds a tablature from a tuning payload alone.
func Import(p model.TuningPayload, frets int) (*tablature.Tablature, error) {
	t, err := tablature.New(frets, Apply(nil, p))
	if err != nil {
		return nil, fmt.Errorf("importing tuning: %w", err)
	}
	return t, nil
}

type xmlStaffTuning struct {
	Line   string `xml:"line,attr"`
	Step   string `xml:"tuning-step"`
	Alter  string `xml:"tuning-alter"`
	Octave string `xml:"tuning-octave"`
}

type xmlStaffDetails struct {
	StaffLines string           `xml:"staff-lines"`
	Tunings    []xmlStaffTuning `xml:"staff-tuning"`
}

// parseWhole reads an integer that MusicXML may also write as a decimal
// ("-1.0"). Empty text is 0. Fractions and garbage are rejected.
func parseWhole(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// ParseMusicXML reads the first <staff-details> element found in r. Other
// children such as <capo> are ignored.
func ParseMusicXML(r io.Reader) (model.TuningPayload, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return model.TuningPayload{}, fmt.Errorf("no staff-details element")
		}
		if err != nil {
			return model.TuningPayload{}, fmt.Errorf("parsing musicxml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "staff-details" {
			continue
		}

		var d xmlStaffDetails
		if err := dec.DecodeElement(&d, &start); err != nil {
			return model.TuningPayload{}, fmt.Errorf("parsing staff-details: %w", err)
		}
		var p model.TuningPayload
		if n, ok := parseWhole(d.StaffLines); ok {
			p.StaffLines = n
		} else {
			slog.Debug("tuning: unreadable staff lines", "staff_lines", d.StaffLines)
		}
		for _, t := range d.Tunings {
			line, okLine := parseWhole(t.Line)
			alter, okAlter := parseWhole(t.Alter)
			octave, okOctave := parseWhole(t.Octave)
			if !okLine || !okAlter || !okOctave {
				slog.Debug("tuning: unreadable staff tuning", "line", t.Line, "alter", t.Alter, "octave", t.Octave)
				continue
			}
			p.Tunings = append(p.Tunings, model.TuningEntry{
				Line:   line,
				Step:   strings.TrimSpace(t.Step),
				Alter:  alter,
				Octave: octave,
			})
		}
		return p, nil
	}
}

func ImportMusicXML(r io.Reader) (*tablature.Tablature, error) {
	p, err := ParseMusicXML(r)
	if err != nil {
		return nil, err
	}
	return Import(p, DefaultFrets)
}
