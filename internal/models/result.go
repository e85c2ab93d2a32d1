package models

// SearchResponse is the outcome of filtering the catalogue for one query.
// Searched is false when no query was supplied, which is not the same as
// a search that matched nothing (Searched true, Total 0).
type SearchResponse struct {
	Query    string  `json:"query"`
	Searched bool    `json:"searched"`
	Courts   []Court `json:"courts"`
	Total    int     `json:"total"`
	// Suggestions holds "did you mean" alternatives. Only set when Total is 0.
	Suggestions []string `json:"suggestions,omitempty"`
}
