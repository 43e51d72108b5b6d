package web

import (
	"net/http"

	"porthmadog-rfc/internal/model"
)

func (s *Server) handleAdminStaff(w http.ResponseWriter, r *http.Request) {
	view := AdminStaffView{
		BaseView: s.adminBaseView(r, "Staff"),
		Staff:    s.store.ListStaff(),
	}
	if err := s.templates.RenderAdmin(w, "admin_staff.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminStaffNew(w http.ResponseWriter, r *http.Request) {
	view := StaffFormView{
		BaseView: s.adminBaseView(r, "New Staff Member"),
		Staff:    model.StaffMember{Category: model.StaffCoach},
		IsNew:    true,
	}
	if err := s.templates.RenderAdmin(w, "admin_staff_form.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminStaffEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "staffID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	member, ok := s.store.GetStaff(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	view := StaffFormView{
		BaseView: s.adminBaseView(r, "Edit Staff Member"),
		Staff:    member,
	}
	if err := s.templates.RenderAdmin(w, "admin_staff_form.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminStaffSave(w http.ResponseWriter, r *http.Request) {
	member := model.StaffMember{
		ID:        formID(r, "id"),
		Name:      formText(r, "name"),
		Role:      formText(r, "role"),
		Category:  model.ParseStaffCategory(formText(r, "category")),
		Bio:       formText(r, "bio"),
		SortOrder: formInt(r, "sort_order"),
	}

	renderErr := func(msg string) {
		view := StaffFormView{
			BaseView: s.adminBaseView(r, "Edit Staff Member"),
			Staff:    member,
			IsNew:    member.ID == 0,
			Error:    msg,
		}
		if err := s.templates.RenderAdmin(w, "admin_staff_form.html", view); err != nil {
			s.renderError(w, err)
		}
	}

	if member.Name == "" {
		renderErr("Name is required.")
		return
	}

	oldPhoto := ""
	if member.ID != 0 {
		existing, ok := s.store.GetStaff(member.ID)
		if !ok {
			http.NotFound(w, r)
			return
		}
		member.PhotoPath = existing.PhotoPath
		oldPhoto = existing.PhotoPath
	}

	newPhoto, err := s.savePhotoField(r, "staff")
	if err != nil {
		renderErr(err.Error())
		return
	}
	if newPhoto != "" {
		member.PhotoPath = newPhoto
	}

	if member.ID == 0 {
		if _, err := s.store.CreateStaff(member); err != nil {
			renderErr("Could not save the staff member.")
			return
		}
		s.flashAndRedirect(w, r, "success", "Staff member added.", "/admin/staff")
		return
	}
	if err := s.store.UpdateStaff(member); err != nil {
		renderErr("Could not save the staff member.")
		return
	}
	if newPhoto != "" && oldPhoto != "" && oldPhoto != newPhoto {
		s.removeUpload(oldPhoto)
	}
	s.flashAndRedirect(w, r, "success", "Staff member updated.", "/admin/staff")
}

func (s *Server) handleAdminStaffDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "staffID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	member, ok := s.store.GetStaff(id)
	if !ok {
		s.flashAndRedirect(w, r, "error", "Staff member no longer exists.", "/admin/staff")
		return
	}
	if err := s.store.DeleteStaff(id); err != nil {
		s.flashAndRedirect(w, r, "error", "Could not delete the staff member.", "/admin/staff")
		return
	}
	s.removeUpload(member.PhotoPath)
	s.flashAndRedirect(w, r, "success", "Staff member deleted.", "/admin/staff")
}
