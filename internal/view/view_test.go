package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyperjump/courtfinder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manchester = models.Court{
	Slug: "manchester-crown-court",
	Name: "Manchester Crown Court",
	Type: "Crown Court",
	Area: "Greater Manchester",
}

func render(t *testing.T, basePath, name string, page *Page) string {
	t.Helper()
	r, err := NewRenderer(basePath)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	require.NoError(t, r.HTML(w, http.StatusOK, name, page))
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	return w.Body.String()
}

func TestNewRenderer_AllPages(t *testing.T) {
	r, err := NewRenderer("/")
	require.NoError(t, err)
	for _, name := range pageNames {
		assert.Contains(t, r.pages, name)
	}
}

func TestRender_HomeWithError(t *testing.T) {
	page := NewPage("Find a court or tribunal", nil).WithError("search", "Enter a court or tribunal name")
	body := render(t, "/", PageHome, page)

	assert.Contains(t, body, `<title>Error: Find a court or tribunal`)
	assert.Contains(t, body, `class="govuk-error-summary"`)
	assert.Contains(t, body, `<a href="#search">Enter a court or tribunal name</a>`)
	assert.Contains(t, body, `data-focus=".govuk-error-summary"`)
	assert.Contains(t, body, `aria-invalid="true"`)
	assert.Contains(t, body, "Error: Enter a court or tribunal name</div>")
}

func TestRender_HomeWithoutError(t *testing.T) {
	body := render(t, "/", PageHome, NewPage("Find a court or tribunal", nil))

	assert.NotContains(t, body, "govuk-error-summary\"")
	assert.NotContains(t, body, "aria-invalid")
	assert.Contains(t, body, `data-focus="#main-content h1"`)
	assert.Contains(t, body, `action="/api/search"`)
}

func TestRender_ResultsFound(t *testing.T) {
	resp := &models.SearchResponse{
		Query:    "manchester",
		Searched: true,
		Courts:   []models.Court{manchester},
		Total:    1,
	}
	page := NewPage("Results", Results{Path: "/results", Response: resp}).Announce("1 result found for %q", "manchester")
	body := render(t, "/courtfinder", PageResults, page)

	assert.Contains(t, body, "1 result found")
	assert.Contains(t, body, `href="/courtfinder/courts/manchester-crown-court"`)
	assert.Contains(t, body, "<mark>Manchester</mark> Crown Court")
	assert.Contains(t, body, "Greater <mark>Manchester</mark>")
	assert.Contains(t, body, `href="/courtfinder/assets/app.css"`)
	assert.NotContains(t, body, "No courts or tribunals found")
}

func TestRender_ResultsPlural(t *testing.T) {
	resp := &models.SearchResponse{
		Query:    "crown",
		Searched: true,
		Courts:   []models.Court{manchester, manchester},
		Total:    2,
	}
	body := render(t, "/", PageResults, NewPage("Results", Results{Path: "/results", Response: resp}))
	assert.Contains(t, body, "2 results found")
}

func TestRender_ResultsNoQuery(t *testing.T) {
	resp := &models.SearchResponse{Courts: []models.Court{}}
	body := render(t, "/", PageResults, NewPage("Search results", Results{Path: "/results", Response: resp}))

	assert.Contains(t, body, "Please enter a search term")
	assert.NotContains(t, body, "found")
}

func TestRender_ResultsNoneWithSuggestion(t *testing.T) {
	resp := &models.SearchResponse{
		Query:       "manchestr",
		Searched:    true,
		Courts:      []models.Court{},
		Suggestions: []string{"manchester"},
	}
	body := render(t, "/", PageResults, NewPage("Results", Results{Path: "/results", Response: resp}))

	assert.Contains(t, body, "0 results found")
	assert.Contains(t, body, "No courts or tribunals found")
	assert.Contains(t, body, `Did you mean <a class="govuk-link" href="/results?q=manchester">manchester</a>?`)
}

func TestRender_NameSearch(t *testing.T) {
	resp := &models.SearchResponse{
		Query:    "crown",
		Searched: true,
		Courts:   []models.Court{manchester, manchester, manchester},
		Total:    3,
	}
	body := render(t, "/", PageNameSearch, NewPage("Search", Results{Path: "/find-a-court-or-tribunal-search", Response: resp}))

	assert.Contains(t, body, "We found 3 courts or tribunals matching your search for &lsquo;crown&rsquo;.")
	assert.Contains(t, body, `value="crown"`)
}

func TestRender_NameSearchSingular(t *testing.T) {
	resp := &models.SearchResponse{Query: "manchester", Searched: true, Courts: []models.Court{manchester}, Total: 1}
	body := render(t, "/", PageNameSearch, NewPage("Search", Results{Path: "/find-a-court-or-tribunal-search", Response: resp}))

	assert.Contains(t, body, "We found 1 court or tribunal matching")
}

func TestRender_NameSearchEmpty(t *testing.T) {
	resp := &models.SearchResponse{Courts: []models.Court{}}
	page := NewPage("Search", Results{Path: "/find-a-court-or-tribunal-search", Response: resp}).
		WithError("fullName", "Enter a court name, address, town or city")
	body := render(t, "/", PageNameSearch, page)

	assert.NotContains(t, body, "We found")
	assert.Contains(t, body, `id="fullName-error"`)
	assert.Contains(t, body, `href="#fullName"`)
}

func TestRender_Options(t *testing.T) {
	page := NewPage("Do you know the name", nil).WithError("courtOption", "Select whether you know the name of the court or tribunal")
	body := render(t, "/", PageOptions, page)

	assert.Contains(t, body, `name="courtOption"`)
	assert.Contains(t, body, `action="/api/court-option"`)
	assert.Contains(t, body, "Select whether you know the name of the court or tribunal")
}

func TestRender_Start(t *testing.T) {
	body := render(t, "/", PageStart, NewPage("Find a court or tribunal", nil))
	assert.Contains(t, body, `href="/find-a-court-or-tribunal-backup"`)
	assert.Contains(t, body, "Start journey")
}

func TestRender_Court(t *testing.T) {
	detail := models.CourtDetail{
		Court:        manchester,
		Description:  "Hears criminal cases.",
		Address:      models.Address{Line1: "The Court House", Line2: "Aytoun Street", Postcode: "M1 3FS"},
		OpeningTimes: []models.LabeledValue{{Label: "Court open", Value: "Monday to Friday 7:30am to 5pm"}},
		Emails:       []models.LabeledValue{{Label: "Listings", Value: "listing@example.org"}},
		Facilities:   []models.Facility{{Name: "Hearing Loop", Description: "In all courtrooms."}},
		AreasOfLaw:   []string{"Crime"},
		CourtCode:    "436",
	}
	body := render(t, "/", PageCourt, NewPage(detail.Name, CourtPage{Court: detail, Back: "/results?q=manchester"}))

	assert.Contains(t, body, "<h1 class=\"govuk-heading-xl\">Manchester Crown Court</h1>")
	assert.Contains(t, body, "The Court House<br>Aytoun Street<br>M1 3FS")
	assert.Contains(t, body, `href="mailto:listing@example.org"`)
	assert.Contains(t, body, "Hearing Loop")
	assert.Contains(t, body, "436")
	assert.Contains(t, body, `href="/results?q=manchester"`)
}

func TestRender_CourtSummaryOnly(t *testing.T) {
	body := render(t, "/", PageCourt, NewPage(manchester.Name, CourtPage{Court: models.CourtDetail{Court: manchester}}))

	assert.Contains(t, body, "Manchester Crown Court")
	assert.NotContains(t, body, "Visit us")
	assert.NotContains(t, body, "Contact us")
	assert.NotContains(t, body, "govuk-back-link\"")
}

func TestRender_EscapesData(t *testing.T) {
	resp := &models.SearchResponse{Query: `<script>`, Searched: true, Courts: []models.Court{}}
	body := render(t, "/", PageResults, NewPage("Results", Results{Path: "/results", Response: resp}))

	assert.NotContains(t, body, "<script>\"")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := NewRenderer("/")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	err = r.HTML(w, http.StatusOK, "missing", NewPage("x", nil))
	assert.Error(t, err)
	assert.Empty(t, w.Body.String())
}

func TestPage_WithEmptyErrorKeepsFocus(t *testing.T) {
	p := NewPage("Home", nil).WithError("search", "")
	assert.Equal(t, DefaultFocus, p.Focus)
	assert.Empty(t, p.Error)
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;<mark>Crown</mark>&lt;/b&gt;", string(highlight("<b>Crown</b>", "crown")))
	assert.Equal(t, "Birmingham", string(highlight("Birmingham", "leeds")))
	assert.Equal(t, "Tom &amp; Jerry", string(highlight("Tom & Jerry", "")))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "court", plural(1, "court", "courts"))
	assert.Equal(t, "courts", plural(0, "court", "courts"))
	assert.Equal(t, "courts", plural(2, "court", "courts"))
}

func TestAssets(t *testing.T) {
	srv := httptest.NewServer(http.StripPrefix("/assets/", Assets()))
	defer srv.Close()

	for _, name := range []string{"focus.js", "app.css"} {
		resp, err := http.Get(srv.URL + "/assets/" + name)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, name)
	}
}
