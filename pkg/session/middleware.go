package session

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/itemstack/pkg/logger"
)

// Name is the cookie name of the view session.
const Name = "items_view"

// Load is a chi middleware that reads the view session and attaches it to the
// request context. A tampered or undecodable cookie is replaced with a fresh
// session rather than failing the request. Handlers persist changes with Save.
func Load(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.Get(r, Name)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie, starting fresh", "error", err)
				s = sessions.NewSession(store, Name)
				s.IsNew = true
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// Save writes the session attached to r. Must be called before the response
// body or a redirect is written.
func Save(w http.ResponseWriter, r *http.Request) error {
	s, err := FromCtx(r.Context())
	if err != nil {
		return err
	}
	return s.Save(r, w)
}
