// Package redirect turns a submitted form field into the redirect that answers it:
// back to the form with an error message, or on to the next page with the query.
package redirect

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/hyperjump/courtfinder/internal/models"
)

const (
	// QueryParam carries the normalized search text on success redirects.
	QueryParam = "q"
	// ErrorParam carries the validation message on error redirects.
	ErrorParam = "error"
)

// Endpoint describes one form handler: which field it reads and where it sends the user.
type Endpoint struct {
	Field        string
	ErrorPath    string
	ErrorMessage string
	SuccessPath  string
	// CarryQuery attaches the normalized value as ?q= on success.
	CarryQuery bool
}

var (
	// HomeSearch handles the search box on the home page.
	HomeSearch = Endpoint{
		Field:        "search",
		ErrorPath:    "/",
		ErrorMessage: "Enter a court or tribunal name",
		SuccessPath:  "/results",
		CarryQuery:   true,
	}
	// NameSearch handles the court name, address, town or city box.
	NameSearch = Endpoint{
		Field:        "fullName",
		ErrorPath:    "/find-a-court-or-tribunal-search",
		ErrorMessage: "Enter a court name, address, town or city",
		SuccessPath:  "/find-a-court-or-tribunal-search",
		CarryQuery:   true,
	}
	// CourtOption handles the "do you know the name" radio buttons. Both
	// choices currently lead to the same page.
	CourtOption = Endpoint{
		Field:        "courtOption",
		ErrorPath:    "/find-a-court-or-tribunal-backup",
		ErrorMessage: "Select whether you know the name of the court or tribunal",
		SuccessPath:  "/find-a-court-or-tribunal-search",
	}
)

// Redirect is where a form submission sends the user next.
type Redirect struct {
	// Target is a path with an optional encoded query; it has no scheme or host.
	Target *url.URL
	// Valid is false when the submitted field was empty.
	Valid bool
	// Query is the normalized submitted value.
	Query string
}

// Normalize removes leading and trailing white space.
func Normalize(raw string) string {
	return models.NewSearchQuery(raw).Normalized
}

// Build validates the endpoint's field in form and computes the redirect.
// A missing field is treated as empty.
func (e Endpoint) Build(form url.Values) Redirect {
	value := Normalize(form.Get(e.Field))
	if value == "" {
		return Redirect{
			Target: &url.URL{Path: e.ErrorPath, RawQuery: encodeParam(ErrorParam, e.ErrorMessage)},
		}
	}
	target := &url.URL{Path: e.SuccessPath}
	if e.CarryQuery {
		target.RawQuery = encodeParam(QueryParam, value)
	}
	return Redirect{Target: target, Valid: true, Query: value}
}

// Resolve makes the target absolute against origin, mounted under basePath.
func (r Redirect) Resolve(origin *url.URL, basePath string) *url.URL {
	u := *r.Target
	u.Path = JoinBase(basePath, r.Target.Path)
	if origin != nil {
		u.Scheme = origin.Scheme
		u.Host = origin.Host
	}
	return &u
}

// Origin returns the scheme and host the client used to reach this request.
// Forwarded headers are honoured only when trustProxy is set.
func Origin(r *http.Request, trustProxy bool) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host
	if trustProxy {
		if p := firstHeaderValue(r.Header.Get("X-Forwarded-Proto")); p != "" {
			scheme = strings.ToLower(p)
		}
		if h := firstHeaderValue(r.Header.Get("X-Forwarded-Host")); h != "" {
			host = h
		}
	}
	if host == "" {
		host = "localhost"
	}
	return &url.URL{Scheme: scheme, Host: host}
}

// JoinBase prefixes p with basePath. A base of "" or "/" leaves p unchanged.
func JoinBase(basePath, p string) string {
	base := strings.TrimSuffix(basePath, "/")
	if base == "" {
		return p
	}
	if p == "/" || p == "" {
		return base + "/"
	}
	return path.Join(base, p)
}

// SearchPath returns p with the normalized query attached the same way a
// successful form submission would attach it.
func SearchPath(p, query string) string {
	return p + "?" + encodeParam(QueryParam, Normalize(query))
}

// encodeParam renders key=value with encodeURIComponent-style escaping, so
// spaces become %20 rather than '+'.
func encodeParam(key, value string) string {
	return key + "=" + escapeComponent(value)
}

// componentUnescapes undoes QueryEscape for the marks encodeURIComponent
// leaves alone. QueryEscape turns a literal '+' into %2B, so every remaining
// '+' is a space.
var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}

// X-Forwarded-* may hold a comma separated chain; the first hop is the client's view.
func firstHeaderValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
