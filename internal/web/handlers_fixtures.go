package web

import (
	"net/http"

	"porthmadog-rfc/internal/model"
)

func (s *Server) handleAdminFixtures(w http.ResponseWriter, r *http.Request) {
	view := AdminFixturesView{
		BaseView: s.adminBaseView(r, "Fixtures"),
		Fixtures: s.store.ListFixtures(),
	}
	if err := s.templates.RenderAdmin(w, "admin_fixtures.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminFixtureNew(w http.ResponseWriter, r *http.Request) {
	view := FixtureFormView{
		BaseView: s.adminBaseView(r, "New Fixture"),
		Fixture:  model.Fixture{Venue: model.VenueHome},
		IsNew:    true,
	}
	if err := s.templates.RenderAdmin(w, "admin_fixture_form.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminFixtureEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "fixtureID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	fixture, ok := s.store.GetFixture(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	view := FixtureFormView{
		BaseView:  s.adminBaseView(r, "Edit Fixture"),
		Fixture:   fixture,
		DateValue: fixture.MatchDate.Format(formDateLayout),
	}
	if err := s.templates.RenderAdmin(w, "admin_fixture_form.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminFixtureSave(w http.ResponseWriter, r *http.Request) {
	fixture := model.Fixture{
		ID:          formID(r, "id"),
		Opponent:    formText(r, "opponent"),
		Venue:       model.ParseVenue(formText(r, "location")),
		Competition: formText(r, "competition"),
	}
	dateValue := formText(r, "match_date")

	renderErr := func(msg string) {
		view := FixtureFormView{
			BaseView:  s.adminBaseView(r, "Edit Fixture"),
			Fixture:   fixture,
			DateValue: dateValue,
			IsNew:     fixture.ID == 0,
			Error:     msg,
		}
		if err := s.templates.RenderAdmin(w, "admin_fixture_form.html", view); err != nil {
			s.renderError(w, err)
		}
	}

	if fixture.Opponent == "" {
		renderErr("Opponent is required.")
		return
	}
	matchDate, ok := parseFormDate(dateValue)
	if !ok {
		renderErr("A valid match date is required.")
		return
	}
	fixture.MatchDate = matchDate

	if fixture.ID == 0 {
		if _, err := s.store.CreateFixture(fixture); err != nil {
			renderErr("Could not save the fixture.")
			return
		}
		s.flashAndRedirect(w, r, "success", "Fixture added.", "/admin/fixtures")
		return
	}
	if err := s.store.UpdateFixture(fixture); err != nil {
		renderErr("Could not save the fixture.")
		return
	}
	s.flashAndRedirect(w, r, "success", "Fixture updated.", "/admin/fixtures")
}

func (s *Server) handleAdminFixtureDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "fixtureID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.store.DeleteFixture(id); err != nil {
		s.flashAndRedirect(w, r, "error", "Could not delete the fixture.", "/admin/fixtures")
		return
	}
	s.flashAndRedirect(w, r, "success", "Fixture deleted.", "/admin/fixtures")
}
