package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/curriculumwatch/curriculumwatch/internal/auth"
)

var errMissingSession = errors.New("no session on request")

type contextKey string

// sessionKey holds the authenticated auth.Session in the request context.
const sessionKey contextKey = "session"

// requireSession rejects requests without a valid bearer token.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			respondErr(w, r, auth.ErrInvalidSession)
			return
		}
		sess, err := s.auth.Validate(token)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session stored by requireSession.
func sessionFrom(ctx context.Context) (auth.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(auth.Session)
	return sess, ok
}
