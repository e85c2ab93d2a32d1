package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/courtfinder/internal/catalogue"
	"github.com/hyperjump/courtfinder/internal/models"
	"github.com/hyperjump/courtfinder/internal/redirect"
	"github.com/hyperjump/courtfinder/internal/view"
	"go.uber.org/zap"
)

const serviceName = "Find a court or tribunal"

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page := view.NewPage(serviceName, nil).
		WithError(redirect.HomeSearch.Field, r.URL.Query().Get(redirect.ErrorParam))
	s.render(w, r, http.StatusOK, view.PageHome, page)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	query := models.NewSearchQuery(r.URL.Query().Get(redirect.QueryParam))
	resp := s.engine.Search(query)

	page := view.NewPage("Search results", view.Results{Path: "/results", Response: resp})
	if resp.Searched {
		page.Title = fmt.Sprintf("Results for “%s”", resp.Query)
		page.Announce("%s found for “%s”", countResults(resp.Total), resp.Query)
	}
	page.WithError(redirect.HomeSearch.Field, r.URL.Query().Get(redirect.ErrorParam))
	s.render(w, r, http.StatusOK, view.PageResults, page)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, view.PageStart, view.NewPage(serviceName, nil))
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	page := view.NewPage("Do you know the name of the court or tribunal?", nil).
		WithError(redirect.CourtOption.Field, r.URL.Query().Get(redirect.ErrorParam))
	s.render(w, r, http.StatusOK, view.PageOptions, page)
}

func (s *Server) handleNameSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := models.NewSearchQuery(params.Get(redirect.QueryParam))
	resp := s.engine.Search(query)

	page := view.NewPage("What is the name or address of the court or tribunal?",
		view.Results{Path: redirect.NameSearch.SuccessPath, Response: resp})
	if resp.Searched {
		page.Announce("We found %d %s matching your search for ‘%s’", resp.Total,
			pluralize(resp.Total, "court or tribunal", "courts or tribunals"), resp.Query)
	}
	page.WithError(redirect.NameSearch.Field, params.Get(redirect.ErrorParam))
	s.render(w, r, http.StatusOK, view.PageNameSearch, page)
}

func (s *Server) handleCourt(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	detail, err := s.courts.Court(slug)
	if errors.Is(err, catalogue.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("court lookup failed", zap.String("slug", slug), zap.Error(err))
		s.renderError(w, r)
		return
	}
	page := view.NewPage(detail.Name, view.CourtPage{Court: detail, Back: s.backLink(r)})
	s.render(w, r, http.StatusOK, view.PageCourt, page)
}

// handleLegacyCourt keeps old detail page links working.
func (s *Server) handleLegacyCourt(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	http.Redirect(w, r, s.path("/courts/"+url.PathEscape(slug)), http.StatusMovedPermanently)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, view.PageNotFound, view.NewPage("Page not found", nil))
}

// backLink returns the results list the user came from, if the referer is
// one of this service's result pages on the same host.
func (s *Server) backLink(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host != r.Host {
		return ""
	}
	switch ref.Path {
	case s.path("/results"), s.path(redirect.NameSearch.SuccessPath):
		if ref.Query().Get(redirect.QueryParam) == "" {
			return ""
		}
		return ref.RequestURI()
	}
	return ""
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, page *view.Page) {
	if err := s.renderer.HTML(w, status, name, page); err != nil {
		s.logger.Error("render failed",
			zap.String("page", name),
			zap.String("request_id", requestIDFrom(r)),
			zap.Error(err),
		)
		s.renderError(w, r)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request) {
	page := view.NewPage("Sorry, there is a problem with the service", nil)
	if err := s.renderer.HTML(w, http.StatusInternalServerError, view.PageError, page); err != nil {
		s.logger.Error("render error page failed", zap.String("request_id", requestIDFrom(r)), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func countResults(n int) string {
	return fmt.Sprintf("%d %s", n, pluralize(n, "result", "results"))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
