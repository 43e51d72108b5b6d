package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const formDateLayout = "2006-01-02T15:04"

func (s *Server) baseView(r *http.Request, title string) BaseView {
	sess := sessionFrom(r)
	view := BaseView{
		Title:       title,
		CurrentPath: r.URL.Path,
	}
	if sess == nil {
		return view
	}
	view.Lang = sess.Lang
	view.AdminName = sess.AdminName
	if flash, err := s.sessions.PopFlash(r.Context(), sess); err == nil && flash != nil {
		view.Flash = flash
	}
	return view
}

// adminBaseView additionally carries a CSRF token for the page's forms.
func (s *Server) adminBaseView(r *http.Request, title string) BaseView {
	view := s.baseView(r, title)
	sess := sessionFrom(r)
	if sess != nil {
		if token, err := s.sessions.CSRFToken(r.Context(), sess); err == nil {
			view.CSRFToken = token
		}
	}
	return view
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	s.logger.Error("render failed", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (s *Server) flashAndRedirect(w http.ResponseWriter, r *http.Request, flashType, message, location string) {
	if sess := sessionFrom(r); sess != nil {
		if err := s.sessions.SetFlash(r.Context(), sess, flashType, message); err != nil {
			s.logger.Error("flash save failed", "error", err)
		}
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func urlParamID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func formID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(r.FormValue(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func formInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	if err != nil {
		return 0
	}
	return n
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formText(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func parseFormDate(value string) (time.Time, bool) {
	parsed, err := time.Parse(formDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}

// sameHostPath reduces a referer to a local path, guarding redirects from
// being pointed off-site.
func sameHostPath(r *http.Request, referer string) string {
	if strings.TrimSpace(referer) == "" {
		return "/"
	}
	parsed, err := url.Parse(referer)
	if err != nil {
		return "/"
	}
	if parsed.Host != "" && parsed.Host != r.Host {
		return "/"
	}
	if !strings.HasPrefix(parsed.Path, "/") {
		return "/"
	}
	path := parsed.Path
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return path
}
