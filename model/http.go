package model

type NoteBody struct {
	Pitch    int  `json:"pitch" validate:"gte=0,lte=127"`
	String   *int `json:"string,omitempty"`
	Fret     *int `json:"fret,omitempty"`
	Conflict bool `json:"conflict"`
}

type FretRequestBody struct {
	Profile   string         `json:"profile,omitempty"`
	Tablature *ProfileRecord `json:"tablature,omitempty" validate:"-"`
	Notes     []NoteBody     `json:"notes" validate:"required,dive"`
}

type ChangeBody struct {
	Note  int    `json:"note"`
	Field string `json:"field"`
	From  any    `json:"from"`
	To    any    `json:"to"`
}

type FretResponse struct {
	Transaction string       `json:"transaction"`
	Notes       []NoteBody   `json:"notes"`
	Changes     []ChangeBody `json:"changes"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

func (b NoteBody) ToNote() *Note {
	n := &Note{Pitch: b.Pitch, Conflict: b.Conflict}
	if b.String != nil {
		n.String = Some(*b.String)
	}
	if b.Fret != nil {
		n.Fret = Some(*b.Fret)
	}
	return n
}

func NoteToBody(n *Note) NoteBody {
	b := NoteBody{Pitch: n.Pitch, Conflict: n.Conflict}
	if n.String.Valid {
		s := n.String.Value
		b.String = &s
	}
	if n.Fret.Valid {
		f := n.Fret.Value
		b.Fret = &f
	}
	return b
}
