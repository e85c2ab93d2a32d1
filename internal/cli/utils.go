// Package cli provides terminal output for courtfinder commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/courtfinder/internal/models"
	"github.com/hyperjump/courtfinder/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const descriptionWords = 40

// ParseOutputFormat maps a --format flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text or json", s)
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	writeSearchResultsText(w, response)
	return nil
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	switch {
	case !response.Searched:
		fmt.Fprintf(w, "\nAll %d %s\n\n", len(response.Courts),
			plural(len(response.Courts), "court or tribunal", "courts and tribunals"))
	case response.Total == 0:
		fmt.Fprintf(w, "\nNo courts or tribunals found for %q\n", response.Query)
		if len(response.Suggestions) > 0 {
			fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(response.Suggestions, ", "))
		}
		fmt.Fprintln(w)
		return
	default:
		fmt.Fprintf(w, "\nFound %d %s for %q\n\n", response.Total,
			plural(response.Total, "court or tribunal", "courts or tribunals"), response.Query)
	}
	for _, court := range response.Courts {
		writeOneCourt(w, court)
	}
}

func writeOneCourt(w io.Writer, court models.Court) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "%s\n", court.Name)
	fmt.Fprintf(w, "%s\n", strings.Join(nonEmpty(court.Type, court.Area), ", "))
	fmt.Fprintf(w, "/courts/%s\n\n", court.Slug)
}

// WriteCourt writes one court's full record to w in the given format.
func WriteCourt(w io.Writer, detail models.CourtDetail, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, detail)
	}
	fmt.Fprintf(w, "%s\n", detail.Name)
	fmt.Fprintf(w, "%s\n", strings.Join(nonEmpty(detail.Type, detail.Area), ", "))
	if detail.Description != "" {
		fmt.Fprintf(w, "\n%s\n", utils.TruncateWords(detail.Description, descriptionWords))
	}
	if lines := detail.Address.Lines(); len(lines) > 0 {
		fmt.Fprintf(w, "\nAddress:\n")
		for _, l := range lines {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
	writeLabeled(w, "Opening times", detail.OpeningTimes)
	writeLabeled(w, "Telephone", detail.Telephones)
	writeLabeled(w, "Email", detail.Emails)
	if len(detail.Facilities) > 0 {
		names := make([]string, 0, len(detail.Facilities))
		for _, f := range detail.Facilities {
			names = append(names, f.Name)
		}
		fmt.Fprintf(w, "\nFacilities: %s\n", strings.Join(names, ", "))
	}
	if len(detail.AreasOfLaw) > 0 {
		fmt.Fprintf(w, "\nAreas of law: %s\n", strings.Join(detail.AreasOfLaw, ", "))
	}
	if detail.CourtCode != "" {
		fmt.Fprintf(w, "Court code: %s\n", detail.CourtCode)
	}
	if detail.DX != "" {
		fmt.Fprintf(w, "DX: %s\n", detail.DX)
	}
	return nil
}

func writeLabeled(w io.Writer, heading string, rows []models.LabeledValue) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", heading)
	for _, r := range rows {
		if r.Note != "" {
			fmt.Fprintf(w, "  %s %s: %s\n", r.Label, r.Note, r.Value)
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", r.Label, r.Value)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
