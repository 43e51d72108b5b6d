package web

import (
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"porthmadog-rfc/internal/model"
)

func (s *Server) handleAdminClub(w http.ResponseWriter, r *http.Request) {
	info, _ := s.store.GetClubInfo()
	view := ClubFormView{
		BaseView: s.adminBaseView(r, "Club Details"),
		Info:     info,
	}
	if err := s.templates.RenderAdmin(w, "admin_club.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminClubSave(w http.ResponseWriter, r *http.Request) {
	existing, _ := s.store.GetClubInfo()
	info := existing
	info.ContactEmail = formText(r, "contact_email")
	info.ContactPhone = formText(r, "contact_phone")
	info.ContactAddress = formText(r, "contact_address")
	info.SocialFacebook = formText(r, "social_facebook")
	info.SocialTwitter = formText(r, "social_twitter")
	info.SocialInstagram = formText(r, "social_instagram")
	info.FoundedYear = formInt(r, "founded_year")
	info.AnniversaryMessage = model.RichText(strings.TrimSpace(r.FormValue("anniversary_message")))

	renderErr := func(msg string) {
		view := ClubFormView{
			BaseView: s.adminBaseView(r, "Club Details"),
			Info:     info,
			Error:    msg,
		}
		if err := s.templates.RenderAdmin(w, "admin_club.html", view); err != nil {
			s.renderError(w, err)
		}
	}

	if info.ContactEmail != "" {
		if _, err := mail.ParseAddress(info.ContactEmail); err != nil {
			renderErr("The contact email address is not valid.")
			return
		}
	}
	for _, link := range []string{info.SocialFacebook, info.SocialTwitter, info.SocialInstagram} {
		if link == "" {
			continue
		}
		parsed, err := url.Parse(link)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			renderErr("Social media links must be full http(s) URLs.")
			return
		}
	}

	if _, err := s.store.SaveClubInfo(info); err != nil {
		renderErr("Could not save the club details.")
		return
	}
	s.flashAndRedirect(w, r, "success", "Club details saved.", "/admin/club")
}

func (s *Server) handleAdminHistory(w http.ResponseWriter, r *http.Request) {
	info, _ := s.store.GetClubInfo()
	view := HistoryFormView{
		BaseView: s.adminBaseView(r, "Club History"),
		Info:     info,
	}
	if err := s.templates.RenderAdmin(w, "admin_history.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminHistorySave(w http.ResponseWriter, r *http.Request) {
	existing, _ := s.store.GetClubInfo()
	info := existing
	info.HistoryContent = model.RichText(strings.TrimSpace(r.FormValue("history_content")))

	if _, err := s.store.SaveClubInfo(info); err != nil {
		view := HistoryFormView{
			BaseView: s.adminBaseView(r, "Club History"),
			Info:     info,
			Error:    "Could not save the history page.",
		}
		if err := s.templates.RenderAdmin(w, "admin_history.html", view); err != nil {
			s.renderError(w, err)
		}
		return
	}
	s.flashAndRedirect(w, r, "success", "History page saved.", "/admin/history")
}
