package view

import (
	"fmt"

	"github.com/hyperjump/courtfinder/internal/models"
)

const (
	// DefaultFocus is the element focused after a page loads.
	DefaultFocus = "#main-content h1"
	// ErrorFocus is focused instead when the page shows an error summary.
	ErrorFocus = ".govuk-error-summary"
)

// Page is the view model every template receives.
//
// Announcement is written into the page's aria-live region so screen readers
// hear it after navigation; Focus is the selector focus.js moves focus to,
// unless the user has already moved into the main content.
type Page struct {
	Title        string
	Announcement string
	Focus        string
	Error        string
	ErrorField   string
	Data         any
}

// NewPage returns a page focusing its main heading.
func NewPage(title string, data any) *Page {
	return &Page{Title: title, Focus: DefaultFocus, Data: data}
}

// Announce sets the live region text.
func (p *Page) Announce(format string, args ...any) *Page {
	p.Announcement = fmt.Sprintf(format, args...)
	return p
}

// WithError shows message in the error summary, linked to the form control
// with id field, and moves focus to the summary.
func (p *Page) WithError(field, message string) *Page {
	if message == "" {
		return p
	}
	p.Error = message
	p.ErrorField = field
	p.Focus = ErrorFocus
	p.Announcement = "Error: " + message
	return p
}

// Results is the data for a page that lists search results.
type Results struct {
	// Path is the page the list lives on; suggestion links point back to it.
	Path     string
	Response *models.SearchResponse
}

// CourtPage is the data for a court's detail page.
type CourtPage struct {
	Court models.CourtDetail
	// Back is the list the user came from, or empty.
	Back string
}
