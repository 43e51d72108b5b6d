package web

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const loginFailedMessage = "Invalid username or password."

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess.Authenticated() && !s.sessions.Expired(sess) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	view := LoginView{
		BaseView: s.adminBaseView(r, "Admin Login"),
		TimedOut: r.URL.Query().Get("reason") == "timeout",
	}
	if err := s.templates.RenderAdmin(w, "admin_login.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := formText(r, "username")
	password := r.FormValue("password")

	user, ok := s.store.GetAdminByUsername(username)
	if !ok || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		view := LoginView{
			BaseView: s.adminBaseView(r, "Admin Login"),
			Error:    loginFailedMessage,
		}
		if err := s.templates.RenderAdmin(w, "admin_login.html", view); err != nil {
			s.renderError(w, err)
		}
		return
	}

	sess := sessionFrom(r)
	if err := s.sessions.Login(r.Context(), w, r, sess, user.ID, user.Username); err != nil {
		s.logger.Error("login failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.sessions.Logout(r.Context(), w, sess); err != nil {
		s.logger.Error("logout failed", "error", err)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
