package tablature

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/fretdex/model"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func PitchName(pitch int) string {
	if pitch < 0 {
		return fmt.Sprintf("?%d", pitch)
	}
	return fmt.Sprintf("%s%d", noteNames[pitch%12], pitch/12-1)
}

// RenderASCII writes chords as plain text tab, one column per chord and one
// line per string, highest string on top. Conflicting notes are left out.
func (t *Tablature) RenderASCII(w io.Writer, chords []model.Chord) error {
	n := len(t.strings)
	lines := make([]strings.Builder, n)
	for str := 0; str < n; str++ {
		fmt.Fprintf(&lines[str], "%-3s|", PitchName(t.open(str)))
	}

	for _, c := range chords {
		cells := make([]string, n)
		width := 1
		for _, note := range c.Notes {
			pos, ok := note.Position()
			if note.Conflict || !ok || pos.String < 0 || pos.String >= n {
				continue
			}
			cells[pos.String] = strconv.Itoa(pos.Fret)
			if len(cells[pos.String]) > width {
				width = len(cells[pos.String])
			}
		}
		for str := 0; str < n; str++ {
			cell := cells[str]
			lines[str].WriteString("-" + cell + strings.Repeat("-", width-len(cell)+1))
		}
	}

	for str := 0; str < n; str++ {
		lines[str].WriteString("|\n")
		if _, err := io.WriteString(w, lines[str].String()); err != nil {
			return err
		}
	}
	return nil
}
