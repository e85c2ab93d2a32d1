package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hyperjump/courtfinder/internal/models"
)

// DefaultMaxDistance is the largest edit distance considered a likely typo.
const DefaultMaxDistance = 2

// Suggest proposes a corrected query when query matched nothing. Each word of
// the query that does not occur in the catalogue vocabulary is replaced with
// the closest known word within maxDistance edits. The corrected query is
// returned only if it differs from query and matches at least one court.
func Suggest(query string, courts []models.Court, fields []Field, maxDistance int) []string {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	if len(fields) == 0 {
		fields = DefaultFields
	}
	vocab := buildVocabulary(courts, fields)
	if len(vocab.freq) == 0 {
		return nil
	}

	terms := tokenize(fold(query))
	corrected := make([]string, 0, len(terms))
	changed := false
	for _, term := range terms {
		if _, ok := vocab.freq[term]; ok {
			corrected = append(corrected, term)
			continue
		}
		if best, ok := vocab.closest(term, maxDistance); ok {
			corrected = append(corrected, best)
			changed = true
			continue
		}
		corrected = append(corrected, term)
	}
	if !changed {
		return nil
	}
	suggestion := strings.Join(corrected, " ")
	if len(Filter(suggestion, courts, fields...)) == 0 {
		return nil
	}
	return []string{suggestion}
}

type vocabulary struct {
	freq  map[string]int // word -> number of courts it appears in
	words []string       // sorted, for deterministic tie breaks
}

func buildVocabulary(courts []models.Court, fields []Field) vocabulary {
	v := vocabulary{freq: make(map[string]int)}
	for i := range courts {
		seen := make(map[string]struct{})
		for _, f := range fields {
			for _, w := range tokenize(fold(f.value(&courts[i]))) {
				if _, dup := seen[w]; dup {
					continue
				}
				seen[w] = struct{}{}
				v.freq[w]++
			}
		}
	}
	v.words = make([]string, 0, len(v.freq))
	for w := range v.freq {
		v.words = append(v.words, w)
	}
	sort.Strings(v.words)
	return v
}

// closest returns the known word nearest to term. Closer words win, then more
// frequent ones. A word is never suggested when the distance is at least the
// length of term, since everything is that close to a very short term.
func (v vocabulary) closest(term string, maxDistance int) (string, bool) {
	termLen := utf8.RuneCountInString(term)
	best, bestDist, bestFreq := "", maxDistance+1, 0
	for _, w := range v.words {
		lenDiff := utf8.RuneCountInString(w) - termLen
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		if lenDiff > maxDistance {
			continue
		}
		d := LevenshteinDistance(term, w)
		if d > maxDistance || d >= termLen {
			continue
		}
		if d < bestDist || (d == bestDist && v.freq[w] > bestFreq) {
			best, bestDist, bestFreq = w, d, v.freq[w]
		}
	}
	return best, best != ""
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// LevenshteinDistance calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change one string into another.
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	runesA := []rune(a)
	runesB := []rune(b)
	if len(runesA) == 0 {
		return len(runesB)
	}
	if len(runesB) == 0 {
		return len(runesA)
	}

	// Only two rows of the matrix are needed at a time.
	prev := make([]int, len(runesB)+1)
	curr := make([]int, len(runesB)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(runesA); i++ {
		curr[0] = i
		for j := 1; j <= len(runesB); j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(runesB)]
}
