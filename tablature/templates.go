package tablature

import (
	"github.com/jsphweid/fretdex/util"
)

const DefaultTemplate = "guitar"

var templates = map[string]*Tablature{
	"guitar":        MustNew(13, []int{40, 45, 50, 55, 59, 64}),
	"guitar-drop-d": MustNew(13, []int{38, 45, 50, 55, 59, 64}),
	"guitar-7":      MustNew(13, []int{35, 40, 45, 50, 55, 59, 64}),
	"bass":          MustNew(21, []int{28, 33, 38, 43}),
	"bass-5":        MustNew(21, []int{23, 28, 33, 38, 43}),
	"ukulele-low-g": MustNew(13, []int{55, 60, 64, 69}),
	"mandolin":      MustNew(18, []int{55, 62, 69, 76}),
	"banjo-tenor":   MustNew(18, []int{48, 55, 62, 69}),
	"guitar-dadgad": MustNew(13, []int{38, 45, 50, 55, 57, 62}),
	"guitar-open-g": MustNew(13, []int{38, 43, 50, 55, 59, 62}),
}

func Guitar() *Tablature {
	return templates[DefaultTemplate]
}

func Template(name string) (*Tablature, bool) {
	t, ok := templates[name]
	return t, ok
}

func TemplateNames() []string {
	return util.SortedKeys(templates)
}
