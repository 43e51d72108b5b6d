package web

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"porthmadog-rfc/internal/session"
)

type contextKey int

const sessionContextKey contextKey = iota

// withSession attaches a session to every request, creating a fresh
// anonymous one when no valid cookie is presented.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Ensure(r.Context(), w, r)
		if err != nil {
			s.logger.Error("session load failed", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionContextKey).(*session.Session)
	return sess
}

// requireAdmin guards the admin panel. An expired session is destroyed and
// the browser is sent back to the login page; an active one has its
// inactivity window refreshed.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if !sess.Authenticated() {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		if s.sessions.Expired(sess) {
			_ = s.sessions.Logout(r.Context(), w, sess)
			http.Redirect(w, r, "/admin/login?reason=timeout", http.StatusSeeOther)
			return
		}
		if err := s.sessions.Touch(r.Context(), sess); err != nil {
			s.logger.Error("session touch failed", "error", err)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if err := s.sessions.ValidateCSRF(sess, r.FormValue("csrf_token")); err != nil {
			http.Error(w, "Invalid security token.", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler",
					"error", rec,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
