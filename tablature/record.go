package tablature

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jsphweid/fretdex/model"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("ascending", validateAscending); err != nil {
		panic(err)
	}
}

func validateAscending(fl validator.FieldLevel) bool {
	pitches, ok := fl.Field().Interface().([]int)
	if !ok {
		return false
	}
	for i := 1; i < len(pitches); i++ {
		if pitches[i] <= pitches[i-1] {
			return false
		}
	}
	return true
}

func FromRecord(r model.ProfileRecord) (*Tablature, error) {
	if err := validate.Struct(r); err != nil {
		return nil, fmt.Errorf("invalid profile %q: %w", r.Name, err)
	}
	return New(r.Frets, r.Strings)
}

func (t *Tablature) Record(name string) model.ProfileRecord {
	return model.ProfileRecord{Name: name, Frets: t.frets, Strings: t.Strings()}
}

// LoadYAML reads a profile record such as
//
//	name: guitar
//	frets: 13
//	strings: [40, 45, 50, 55, 59, 64]
func LoadYAML(path string) (*Tablature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var r model.ProfileRecord
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return FromRecord(r)
}

type xmlTablature struct {
	XMLName xml.Name `xml:"Tablature"`
	Frets   int      `xml:"frets"`
	Strings []int    `xml:"string"`
}

// WriteXML stores the tablature as
// <Tablature><frets>13</frets><string>40</string>...</Tablature>.
func (t *Tablature) WriteXML(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(xmlTablature{Frets: t.frets, Strings: t.strings}); err != nil {
		return fmt.Errorf("writing tablature xml: %w", err)
	}
	return enc.Flush()
}

func ReadXML(r io.Reader) (*Tablature, error) {
	var x xmlTablature
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, fmt.Errorf("reading tablature xml: %w", err)
	}
	return FromRecord(model.ProfileRecord{Frets: x.Frets, Strings: x.Strings})
}
