package web

import "net/http"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	players, fixtures, results := s.store.Counts()
	view := DashboardView{
		BaseView:     s.adminBaseView(r, "Dashboard"),
		PlayerCount:  players,
		FixtureCount: fixtures,
		ResultCount:  results,
	}
	if next, ok := s.store.NextFixture(s.clock.Now()); ok {
		view.NextFixture = &next
	}
	if err := s.templates.RenderAdmin(w, "admin_dashboard.html", view); err != nil {
		s.renderError(w, err)
	}
}
