package models

import "strings"

// SearchQuery is one submitted search. Raw is what the user typed; Normalized
// has surrounding white space removed.
type SearchQuery struct {
	Raw        string `json:"raw"`
	Normalized string `json:"query"`
}

// NewSearchQuery builds a query from raw user input.
func NewSearchQuery(raw string) SearchQuery {
	return SearchQuery{Raw: raw, Normalized: strings.TrimSpace(raw)}
}

// Empty reports whether nothing but white space was submitted.
func (q SearchQuery) Empty() bool {
	return q.Normalized == ""
}
