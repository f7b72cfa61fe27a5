package model

type ProfileRecord struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Frets   int    `json:"frets" yaml:"frets" validate:"gte=0"`
	Strings []int  `json:"strings" yaml:"strings" validate:"required,min=1,ascending,dive,gte=0,lte=127"`
}

type TuningEntry struct {
	Line   int    `json:"line"`
	Step   string `json:"step"`
	Alter  int    `json:"alter"`
	Octave int    `json:"octave"`
}

type TuningPayload struct {
	StaffLines int           `json:"staff_lines"`
	Tunings    []TuningEntry `json:"tunings"`
}
