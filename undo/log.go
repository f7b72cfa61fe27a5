// Package undo groups note changes into transactions that can be undone and
// redone as a unit.
package undo

import (
	"github.com/google/uuid"
	"github.com/jsphweid/fretdex/fret"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/tablature"
)

type Transaction struct {
	ID      uuid.UUID
	Label   string
	Changes []fret.Change
}

// Log is a fret.Sink. Changes are applied as soon as they are emitted and
// recorded in the open transaction; a change emitted with no open
// transaction gets one of its own.
type Log struct {
	// OnChange, if set, is called after each change has been applied.
	OnChange func(c fret.Change)

	done    []*Transaction
	undone  []*Transaction
	current *Transaction
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Begin(label string) *Transaction {
	if l.current == nil {
		l.current = &Transaction{ID: uuid.New(), Label: label}
	}
	return l.current
}

func (l *Log) Emit(c fret.Change) {
	c.Apply()
	if l.current == nil {
		l.Begin(c.Field())
		defer l.Commit()
	}
	l.current.Changes = append(l.current.Changes, c)
	if l.OnChange != nil {
		l.OnChange(c)
	}
}

// Commit closes the open transaction. Empty transactions are dropped and
// nil is returned.
func (l *Log) Commit() *Transaction {
	t := l.current
	l.current = nil
	if t == nil || len(t.Changes) == 0 {
		return nil
	}
	l.done = append(l.done, t)
	l.undone = nil
	return t
}

func (l *Log) Undo() (*Transaction, bool) {
	if len(l.done) == 0 {
		return nil, false
	}
	t := l.done[len(l.done)-1]
	l.done = l.done[:len(l.done)-1]
	for i := len(t.Changes) - 1; i >= 0; i-- {
		t.Changes[i].Revert()
	}
	l.undone = append(l.undone, t)
	return t, true
}

func (l *Log) Redo() (*Transaction, bool) {
	if len(l.undone) == 0 {
		return nil, false
	}
	t := l.undone[len(l.undone)-1]
	l.undone = l.undone[:len(l.undone)-1]
	for _, c := range t.Changes {
		c.Apply()
	}
	l.done = append(l.done, t)
	return t, true
}

func (l *Log) Len() int {
	return len(l.done)
}

// FretChord runs the assigner inside a single transaction.
func (l *Log) FretChord(a *fret.Assigner, tab *tablature.Tablature, chord model.Chord) (*Transaction, fret.Result) {
	l.Begin("fret chord")
	res := a.FretChord(tab, chord, l)
	return l.Commit(), res
}
