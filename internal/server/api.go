package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/courtfinder/internal/catalogue"
	"github.com/hyperjump/courtfinder/internal/models"
	"github.com/hyperjump/courtfinder/internal/redirect"
	"go.uber.org/zap"
)

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	query := models.NewSearchQuery(r.URL.Query().Get(redirect.QueryParam))
	if query.Empty() {
		courts := s.courts.Courts()
		s.respondJSON(w, http.StatusOK, &models.SearchResponse{Courts: courts, Total: len(courts)})
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.Search(query))
}

func (s *Server) handleAPICourt(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	detail, err := s.courts.Court(slug)
	if errors.Is(err, catalogue.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "court not found")
		return
	}
	if err != nil {
		s.logger.Error("court lookup failed", zap.String("slug", slug), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"courts": len(s.courts.Courts()),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
