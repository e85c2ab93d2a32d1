// Package models defines core data structures for courts, queries, and search results.
package models

// Court is one entry of the court catalogue as shown in result lists.
type Court struct {
	Slug string `json:"slug" yaml:"slug"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Area string `json:"area" yaml:"area"`
}

// Address is a postal address split into display lines.
type Address struct {
	Line1    string `json:"line1" yaml:"line1"`
	Line2    string `json:"line2,omitempty" yaml:"line2"`
	Line3    string `json:"line3,omitempty" yaml:"line3"`
	Postcode string `json:"postcode" yaml:"postcode"`
}

// Lines returns the non-empty address lines followed by the postcode.
func (a Address) Lines() []string {
	var out []string
	for _, l := range []string{a.Line1, a.Line2, a.Line3, a.Postcode} {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// LabeledValue is a generic "key: value" row, e.g. an opening time or a phone number.
type LabeledValue struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	Note  string `json:"note,omitempty" yaml:"note"`
}

// Facility describes something available at the court building.
type Facility struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// CourtDetail is the full record rendered on a court's own page.
// The embedded Court always comes from the catalogue index.
type CourtDetail struct {
	Court             `yaml:",inline"`
	Description       string         `json:"description,omitempty" yaml:"description"`
	Address           Address        `json:"address" yaml:"address"`
	MapsURL           string         `json:"maps_url,omitempty" yaml:"maps_url"`
	OpeningTimes      []LabeledValue `json:"opening_times,omitempty" yaml:"opening_times"`
	Emails            []LabeledValue `json:"emails,omitempty" yaml:"emails"`
	Telephones        []LabeledValue `json:"telephones,omitempty" yaml:"telephones"`
	DisabilityContact string         `json:"disability_contact,omitempty" yaml:"disability_contact"`
	Facilities        []Facility     `json:"facilities,omitempty" yaml:"facilities"`
	AreasOfLaw        []string       `json:"areas_of_law,omitempty" yaml:"areas_of_law"`
	CourtCode         string         `json:"court_code,omitempty" yaml:"court_code"`
	DX                string         `json:"dx,omitempty" yaml:"dx"`
}
