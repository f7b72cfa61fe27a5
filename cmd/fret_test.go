package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jsphweid/fretdex/tablature"
	"github.com/stretchr/testify/assert"
)

func TestParsePitch(t *testing.T) {
	cases := map[string]int{
		"64":  64,
		"E4":  64,
		"E2":  40,
		"Bb3": 58,
		"C#5": 73,
		"g3":  55,
	}
	for in, want := range cases {
		got, err := parsePitch(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"128", "-1", "H2", "E", "C#x"} {
		_, err := parsePitch(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseChordSplitsCommas(t *testing.T) {
	chord, err := parseChord([]string{"E2,A2", "D3"})
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]int{40, 45, 50}, chord.Pitches())
}

func TestHeldChordKeepsPositions(t *testing.T) {
	var out bytes.Buffer
	h := newHeldChord(tablature.Guitar(), &out)

	// 60 goes to the B string and stays there once 64 joins
	h.press(60)
	h.settle()
	first := h.current.Notes[0]
	h.press(64)
	h.settle()

	assert := assert.New(t)
	assert.Same(first, h.current.Notes[0])
	assert.Equal(1, first.String.Value)
	assert.Equal(0, h.current.Notes[1].String.Value)
	assert.Equal(2, strings.Count(out.String(), "PITCH"))

	// no change, no output
	h.settle()
	assert.Equal(2, strings.Count(out.String(), "PITCH"))
}
