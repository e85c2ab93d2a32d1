package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Segment
	}{
		{"no query", "Manchester Crown Court", "", []Segment{{Text: "Manchester Crown Court"}}},
		{"no match", "Manchester Crown Court", "leeds", []Segment{{Text: "Manchester Crown Court"}}},
		{"prefix", "Manchester Crown Court", "manchester", []Segment{
			{Text: "Manchester", Match: true},
			{Text: " Crown Court"},
		}},
		{"middle", "Inner London Crown Court", "LONDON", []Segment{
			{Text: "Inner "},
			{Text: "London", Match: true},
			{Text: " Crown Court"},
		}},
		{"repeated", "Court of Courts", "court", []Segment{
			{Text: "Court", Match: true},
			{Text: " of "},
			{Text: "Court", Match: true},
			{Text: "s"},
		}},
		{"whole", "Leeds", "leeds", []Segment{{Text: "Leeds", Match: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.text, tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Highlight(%q, %q) mismatch (-want +got):\n%s", tt.text, tt.query, diff)
			}
		})
	}
}
