package search

import "strings"

// Segment is a piece of text that either matched the query or did not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into segments, marking every case-insensitive
// occurrence of query. When lower-casing changes the byte length of text
// (some non-ASCII scripts), the text is returned as a single plain segment.
func Highlight(text, query string) []Segment {
	if query == "" || text == "" {
		return []Segment{{Text: text}}
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	if len(lowerText) != len(text) {
		return []Segment{{Text: text}}
	}
	var segs []Segment
	pos := 0
	for {
		i := strings.Index(lowerText[pos:], lowerQuery)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(lowerQuery)
		if start > pos {
			segs = append(segs, Segment{Text: text[pos:start]})
		}
		segs = append(segs, Segment{Text: text[start:end], Match: true})
		pos = end
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:]})
	}
	if len(segs) == 0 {
		segs = append(segs, Segment{Text: text})
	}
	return segs
}
