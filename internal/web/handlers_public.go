package web

import (
	"net/http"

	"porthmadog-rfc/internal/i18n"
	"porthmadog-rfc/internal/model"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	view := HomeView{BaseView: s.baseView(r, "Porthmadog RFC")}
	if next, ok := s.store.NextFixture(s.clock.Now()); ok {
		view.NextFixture = &next
	}
	if latest, ok := s.store.LatestResult(); ok {
		view.LatestResult = &latest
	}
	if info, ok := s.store.GetClubInfo(); ok {
		view.FoundedYear = info.FoundedYear
		if !info.AnniversaryMessage.Empty() {
			view.Anniversary = info.AnniversaryMessage
		}
	}
	if players := s.store.ListPlayers(); len(players) > 3 {
		view.Featured = players[:3]
	} else {
		view.Featured = players
	}
	if err := s.templates.Render(w, "home.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handlePlayersPage(w http.ResponseWriter, r *http.Request) {
	view := PlayersView{
		BaseView: s.baseView(r, "Squad"),
		Players:  s.store.ListPlayers(),
	}
	if err := s.templates.Render(w, "players.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handlePlayerPage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "playerID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	player, ok := s.store.GetPlayer(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	view := PlayerView{
		BaseView: s.baseView(r, player.Name),
		Player:   player,
		Stats:    s.store.ListStatsForPlayer(player.ID),
	}
	if err := s.templates.Render(w, "player.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleFixturesPage(w http.ResponseWriter, r *http.Request) {
	view := FixturesView{
		BaseView: s.baseView(r, "Fixtures"),
		Fixtures: s.store.ListUpcomingFixtures(s.clock.Now()),
	}
	if err := s.templates.Render(w, "fixtures.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleResultsPage(w http.ResponseWriter, r *http.Request) {
	view := ResultsView{
		BaseView: s.baseView(r, "Results"),
		Results:  s.store.ListResults(),
	}
	if err := s.templates.Render(w, "results.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleClubPage(w http.ResponseWriter, r *http.Request) {
	info, _ := s.store.GetClubInfo()
	view := ClubView{
		BaseView: s.baseView(r, "The Club"),
		Info:     info,
	}
	for _, member := range s.store.ListStaff() {
		switch member.Category {
		case model.StaffCoach:
			view.Coaches = append(view.Coaches, member)
		case model.StaffCommittee:
			view.Board = append(view.Board, member)
		}
	}
	if err := s.templates.Render(w, "club.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleHistoryPage(w http.ResponseWriter, r *http.Request) {
	info, _ := s.store.GetClubInfo()
	view := HistoryView{
		BaseView: s.baseView(r, "History"),
		Info:     info,
	}
	if err := s.templates.Render(w, "history.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleContactPage(w http.ResponseWriter, r *http.Request) {
	info, _ := s.store.GetClubInfo()
	view := ContactView{
		BaseView: s.baseView(r, "Contact"),
		Info:     info,
	}
	if err := s.templates.Render(w, "contact.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleSetLang(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("lang")
	lang := i18n.Parse(raw)
	if string(lang) == raw {
		if sess := sessionFrom(r); sess != nil {
			if err := s.sessions.SetLang(r.Context(), sess, lang); err != nil {
				s.logger.Error("language save failed", "error", err)
			}
		}
	}
	http.Redirect(w, r, sameHostPath(r, r.Referer()), http.StatusSeeOther)
}
