package server

import (
	"errors"
	"net/http"

	"github.com/hyperjump/courtfinder/internal/redirect"
	"go.uber.org/zap"
)

// handleForm validates one submitted field and answers 303 See Other,
// either back to the form with an error or on to the endpoint's next page.
func (s *Server) handleForm(ep redirect.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			s.logger.Debug("invalid form body", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		rd := ep.Build(r.PostForm)
		target := rd.Resolve(redirect.Origin(r, s.config.TrustProxyHeaders), s.config.BasePath)
		s.logger.Debug("form submitted",
			zap.String("field", ep.Field),
			zap.Bool("valid", rd.Valid),
			zap.String("location", target.String()),
			zap.String("request_id", requestIDFrom(r)),
		)
		http.Redirect(w, r, target.String(), http.StatusSeeOther)
	}
}
