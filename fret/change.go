package fret

import (
	"github.com/jsphweid/fretdex/model"
)

// Change is one field edit on one note. The assigner never writes note fields
// itself; it emits a Change per differing field and lets the Sink apply it.
type Change interface {
	Target() *model.Note
	Field() string
	Apply()
	Revert()
	isChange()
}

type StringChange struct {
	Note     *model.Note
	From, To model.Opt
}

func (c StringChange) Target() *model.Note { return c.Note }
func (c StringChange) Field() string       { return "string" }
func (c StringChange) Apply()              { c.Note.String = c.To }
func (c StringChange) Revert()             { c.Note.String = c.From }
func (c StringChange) isChange()           {}

type FretChange struct {
	Note     *model.Note
	From, To model.Opt
}

func (c FretChange) Target() *model.Note { return c.Note }
func (c FretChange) Field() string       { return "fret" }
func (c FretChange) Apply()              { c.Note.Fret = c.To }
func (c FretChange) Revert()             { c.Note.Fret = c.From }
func (c FretChange) isChange()           {}

type ConflictChange struct {
	Note     *model.Note
	From, To bool
}

func (c ConflictChange) Target() *model.Note { return c.Note }
func (c ConflictChange) Field() string       { return "conflict" }
func (c ConflictChange) Apply()              { c.Note.Conflict = c.To }
func (c ConflictChange) Revert()             { c.Note.Conflict = c.From }
func (c ConflictChange) isChange()           {}

type Sink interface {
	Emit(c Change)
}

type SinkFunc func(c Change)

func (f SinkFunc) Emit(c Change) {
	f(c)
}

// Direct applies every change immediately and keeps no history.
var Direct Sink = SinkFunc(func(c Change) { c.Apply() })
