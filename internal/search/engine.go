// Package search filters the court catalogue for a query.
package search

import (
	"github.com/hyperjump/courtfinder/internal/config"
	"github.com/hyperjump/courtfinder/internal/models"
	"github.com/hyperjump/courtfinder/pkg/utils"
	"go.uber.org/zap"
)

const maxLoggedQuery = 100

// Catalogue supplies the current, read-only list of courts.
type Catalogue interface {
	Courts() []models.Court
}

// Engine answers search queries against a catalogue.
type Engine struct {
	catalogue   Catalogue
	fields      []Field
	suggestions bool
	maxDistance int
	logger      *zap.Logger
}

// NewEngine creates an engine. It fails only on an unknown match field in cfg.
func NewEngine(catalogue Catalogue, cfg *config.SearchConfig, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		catalogue:   catalogue,
		fields:      DefaultFields,
		maxDistance: DefaultMaxDistance,
		suggestions: true,
		logger:      logger,
	}
	if cfg != nil {
		fields, err := ParseFields(cfg.MatchFields)
		if err != nil {
			return nil, err
		}
		e.fields = fields
		e.suggestions = cfg.SuggestionsOrDefault()
		if cfg.MaxSuggestionDistance > 0 {
			e.maxDistance = cfg.MaxSuggestionDistance
		}
	}
	return e, nil
}

// Fields returns the court fields queries are matched against.
func (e *Engine) Fields() []Field {
	return append([]Field(nil), e.fields...)
}

// Search filters the catalogue. An empty query is not searched at all: the
// response has Searched false and no courts.
func (e *Engine) Search(query models.SearchQuery) *models.SearchResponse {
	if query.Empty() {
		return &models.SearchResponse{Courts: []models.Court{}}
	}
	courts := e.catalogue.Courts()
	matches := Filter(query.Normalized, courts, e.fields...)
	resp := &models.SearchResponse{
		Query:    query.Normalized,
		Searched: true,
		Courts:   matches,
		Total:    len(matches),
	}
	if resp.Total == 0 && e.suggestions {
		resp.Suggestions = Suggest(query.Normalized, courts, e.fields, e.maxDistance)
	}
	e.logger.Debug("search",
		zap.String("query", utils.Truncate(query.Normalized, maxLoggedQuery)),
		zap.Int("total", resp.Total),
		zap.Int("catalogue_size", len(courts)),
		zap.Strings("suggestions", resp.Suggestions),
	)
	return resp
}
