package redirect

import (
	"crypto/tls"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{" Manchester ", "Manchester"},
		{"\tAytoun Street\n", "Aytoun Street"},
		{" Leeds ", "Leeds"},
		{"crown", "crown"},
	}
	for _, tt := range tests {
		got := Normalize(tt.in)
		assert.Equal(t, tt.want, got, "Normalize(%q)", tt.in)
		assert.Equal(t, got, Normalize(got), "Normalize should be idempotent for %q", tt.in)
	}
}

func TestEndpoint_Build_errors(t *testing.T) {
	tests := []struct {
		name     string
		endpoint Endpoint
		form     url.Values
		want     string
	}{
		{"home missing field", HomeSearch, url.Values{}, "/?error=Enter%20a%20court%20or%20tribunal%20name"},
		{"home empty", HomeSearch, url.Values{"search": {""}}, "/?error=Enter%20a%20court%20or%20tribunal%20name"},
		{"home whitespace", HomeSearch, url.Values{"search": {"   "}}, "/?error=Enter%20a%20court%20or%20tribunal%20name"},
		{"name search", NameSearch, url.Values{"fullName": {" "}},
			"/find-a-court-or-tribunal-search?error=Enter%20a%20court%20name%2C%20address%2C%20town%20or%20city"},
		{"court option", CourtOption, url.Values{"other": {"option1"}},
			"/find-a-court-or-tribunal-backup?error=Select%20whether%20you%20know%20the%20name%20of%20the%20court%20or%20tribunal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.endpoint.Build(tt.form)
			assert.False(t, r.Valid)
			assert.Empty(t, r.Query)
			assert.Equal(t, tt.want, r.Target.String())

			params, err := url.ParseQuery(r.Target.RawQuery)
			require.NoError(t, err)
			assert.Len(t, params, 1, "error redirects carry only the error parameter")
			assert.Equal(t, tt.endpoint.ErrorMessage, params.Get(ErrorParam))
		})
	}
}

func TestEndpoint_Build_success(t *testing.T) {
	tests := []struct {
		name     string
		endpoint Endpoint
		form     url.Values
		want     string
	}{
		{"home", HomeSearch, url.Values{"search": {"manchester"}}, "/results?q=manchester"},
		{"home trimmed", HomeSearch, url.Values{"search": {" Manchester "}}, "/results?q=Manchester"},
		{"name search", NameSearch, url.Values{"fullName": {"Aytoun Street"}},
			"/find-a-court-or-tribunal-search?q=Aytoun%20Street"},
		{"marks left bare", HomeSearch, url.Values{"search": {"St Mary's (Court)!*"}},
			"/results?q=St%20Mary's%20(Court)!*"},
		{"reserved escaped", HomeSearch, url.Values{"search": {"a&b=c/d?e#f"}},
			"/results?q=a%26b%3Dc%2Fd%3Fe%23f"},
		{"option one", CourtOption, url.Values{"courtOption": {"option1"}}, "/find-a-court-or-tribunal-search"},
		{"option two", CourtOption, url.Values{"courtOption": {"option2"}}, "/find-a-court-or-tribunal-search"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.endpoint.Build(tt.form)
			assert.True(t, r.Valid)
			assert.Equal(t, tt.want, r.Target.String())
		})
	}
}

func TestEndpoint_Build_roundTrip(t *testing.T) {
	inputs := []string{
		"Aytoun Street",
		"Fish & Chips",
		"a+b=c?d#e/f",
		"Caerdydd Llys Ynadon – Cymraeg",
		"Zürich Straße",
		"100% sure",
		"St Mary's (Court)!*",
		"1+1",
	}
	for _, in := range inputs {
		r := HomeSearch.Build(url.Values{"search": {"  " + in + "  "}})
		require.True(t, r.Valid, in)
		assert.NotContains(t, r.Target.RawQuery, "+", "spaces must be encoded as %%20 for %q", in)

		params, err := url.ParseQuery(r.Target.RawQuery)
		require.NoError(t, err)
		assert.Equal(t, in, params.Get(QueryParam))
		assert.Equal(t, in, r.Query)
	}
}

func TestRedirect_Resolve(t *testing.T) {
	r := HomeSearch.Build(url.Values{"search": {"manchester"}})
	origin := &url.URL{Scheme: "https", Host: "courts.example.org"}

	assert.Equal(t, "https://courts.example.org/results?q=manchester", r.Resolve(origin, "/").String())
	assert.Equal(t, "https://courts.example.org/fact/results?q=manchester", r.Resolve(origin, "/fact/").String())
	assert.Equal(t, "/results?q=manchester", r.Resolve(nil, "").String())

	home := HomeSearch.Build(url.Values{})
	assert.Equal(t, "https://courts.example.org/fact/?error=Enter%20a%20court%20or%20tribunal%20name",
		home.Resolve(origin, "/fact").String())
	// Resolve must not modify the relative target.
	assert.Equal(t, "/?error=Enter%20a%20court%20or%20tribunal%20name", home.Target.String())
}

func TestOrigin(t *testing.T) {
	req := httptest.NewRequest("POST", "http://internal:3000/api/search", nil)
	req.Host = "internal:3000"
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "courts.example.org, proxy.local")

	assert.Equal(t, "http://internal:3000", Origin(req, false).String())
	assert.Equal(t, "https://courts.example.org", Origin(req, true).String())

	req = httptest.NewRequest("POST", "https://secure.local/api/search", nil)
	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://secure.local", Origin(req, true).String())
}

func TestJoinBase(t *testing.T) {
	assert.Equal(t, "/results", JoinBase("", "/results"))
	assert.Equal(t, "/results", JoinBase("/", "/results"))
	assert.Equal(t, "/fact/results", JoinBase("/fact", "/results"))
	assert.Equal(t, "/fact/", JoinBase("/fact/", "/"))
}

func TestSearchPath(t *testing.T) {
	assert.Equal(t, "/results?q=Aytoun%20Street", SearchPath("/results", "  Aytoun Street "))
	assert.Equal(t, "/results?q=A%26B", SearchPath("/results", "A&B"))

	// Same encoding as a redirect built from a form.
	r := HomeSearch.Build(url.Values{"search": {"Inner London"}})
	assert.Equal(t, r.Target.String(), SearchPath("/results", "Inner London"))
}
