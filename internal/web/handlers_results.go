package web

import (
	"net/http"

	"porthmadog-rfc/internal/model"
)

func (s *Server) handleAdminResults(w http.ResponseWriter, r *http.Request) {
	view := AdminResultsView{
		BaseView: s.adminBaseView(r, "Results"),
		Results:  s.store.ListResults(),
	}
	if err := s.templates.RenderAdmin(w, "admin_results.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminResultNew(w http.ResponseWriter, r *http.Request) {
	view := ResultFormView{
		BaseView: s.adminBaseView(r, "New Result"),
		Result:   model.Result{Venue: model.VenueHome},
		IsNew:    true,
	}
	if err := s.templates.RenderAdmin(w, "admin_result_form.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminResultEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "resultID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	result, ok := s.store.GetResult(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	view := ResultFormView{
		BaseView:  s.adminBaseView(r, "Edit Result"),
		Result:    result,
		DateValue: result.MatchDate.Format(formDateLayout),
	}
	if err := s.templates.RenderAdmin(w, "admin_result_form.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminResultSave(w http.ResponseWriter, r *http.Request) {
	result := model.Result{
		ID:            formID(r, "id"),
		Opponent:      formText(r, "opponent"),
		OurScore:      formInt(r, "our_score"),
		OpponentScore: formInt(r, "opponent_score"),
		Venue:         model.ParseVenue(formText(r, "location")),
		Competition:   formText(r, "competition"),
		MatchReport:   formText(r, "match_report"),
		ManOfTheMatch: formText(r, "motm"),
	}
	dateValue := formText(r, "match_date")

	renderErr := func(msg string) {
		view := ResultFormView{
			BaseView:  s.adminBaseView(r, "Edit Result"),
			Result:    result,
			DateValue: dateValue,
			IsNew:     result.ID == 0,
			Error:     msg,
		}
		if err := s.templates.RenderAdmin(w, "admin_result_form.html", view); err != nil {
			s.renderError(w, err)
		}
	}

	if result.Opponent == "" {
		renderErr("Opponent is required.")
		return
	}
	if result.OurScore < 0 || result.OpponentScore < 0 {
		renderErr("Scores cannot be negative.")
		return
	}
	matchDate, ok := parseFormDate(dateValue)
	if !ok {
		renderErr("A valid match date is required.")
		return
	}
	result.MatchDate = matchDate

	if result.ID == 0 {
		if _, err := s.store.CreateResult(result); err != nil {
			renderErr("Could not save the result.")
			return
		}
		s.flashAndRedirect(w, r, "success", "Result added.", "/admin/results")
		return
	}
	if err := s.store.UpdateResult(result); err != nil {
		renderErr("Could not save the result.")
		return
	}
	s.flashAndRedirect(w, r, "success", "Result updated.", "/admin/results")
}

func (s *Server) handleAdminResultDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "resultID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.store.DeleteResult(id); err != nil {
		s.flashAndRedirect(w, r, "error", "Could not delete the result.", "/admin/results")
		return
	}
	s.flashAndRedirect(w, r, "success", "Result deleted.", "/admin/results")
}
