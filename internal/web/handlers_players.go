package web

import (
	"errors"
	"net/http"
	"path/filepath"

	"porthmadog-rfc/internal/model"
	"porthmadog-rfc/internal/upload"
)

func (s *Server) handleAdminPlayers(w http.ResponseWriter, r *http.Request) {
	view := AdminPlayersView{
		BaseView: s.adminBaseView(r, "Players"),
		Players:  s.store.ListPlayers(),
	}
	if err := s.templates.RenderAdmin(w, "admin_players.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminPlayerNew(w http.ResponseWriter, r *http.Request) {
	view := PlayerFormView{
		BaseView: s.adminBaseView(r, "New Player"),
		IsNew:    true,
	}
	if err := s.templates.RenderAdmin(w, "admin_player_form.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminPlayerEdit(w http.ResponseWriter, r *http.Request) {
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
	view := PlayerFormView{
		BaseView: s.adminBaseView(r, "Edit Player"),
		Player:   player,
		Stats:    s.store.ListStatsForPlayer(player.ID),
	}
	if err := s.templates.RenderAdmin(w, "admin_player_form.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminPlayerSave(w http.ResponseWriter, r *http.Request) {
	player := model.Player{
		ID:          formID(r, "id"),
		Name:        formText(r, "name"),
		Position:    formText(r, "position"),
		SquadNumber: formInt(r, "squad_number"),
		Age:         formInt(r, "age"),
		Bio:         formText(r, "bio"),
	}
	if player.Name == "" {
		s.renderPlayerForm(w, r, player, "Name is required.")
		return
	}

	oldPhoto := ""
	if player.ID != 0 {
		existing, ok := s.store.GetPlayer(player.ID)
		if !ok {
			http.NotFound(w, r)
			return
		}
		player.PhotoPath = existing.PhotoPath
		oldPhoto = existing.PhotoPath
	}

	newPhoto, err := s.savePhotoField(r, "players")
	if err != nil {
		s.renderPlayerForm(w, r, player, err.Error())
		return
	}
	if newPhoto != "" {
		player.PhotoPath = newPhoto
	}

	if player.ID == 0 {
		if _, err := s.store.CreatePlayer(player); err != nil {
			s.renderPlayerForm(w, r, player, "Could not save the player.")
			return
		}
		s.flashAndRedirect(w, r, "success", "Player added.", "/admin/players")
		return
	}
	if err := s.store.UpdatePlayer(player); err != nil {
		s.renderPlayerForm(w, r, player, "Could not save the player.")
		return
	}
	if newPhoto != "" && oldPhoto != "" && oldPhoto != newPhoto {
		s.removeUpload(oldPhoto)
	}
	s.flashAndRedirect(w, r, "success", "Player updated.", "/admin/players")
}

func (s *Server) renderPlayerForm(w http.ResponseWriter, r *http.Request, player model.Player, errMsg string) {
	view := PlayerFormView{
		BaseView: s.adminBaseView(r, "Edit Player"),
		Player:   player,
		IsNew:    player.ID == 0,
		Error:    errMsg,
	}
	if player.ID != 0 {
		view.Stats = s.store.ListStatsForPlayer(player.ID)
	}
	if err := s.templates.RenderAdmin(w, "admin_player_form.html", view); err != nil {
		s.renderError(w, err)
	}
}

func (s *Server) handleAdminPlayerDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "playerID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	player, ok := s.store.GetPlayer(id)
	if !ok {
		s.flashAndRedirect(w, r, "error", "Player no longer exists.", "/admin/players")
		return
	}
	if err := s.store.DeletePlayer(id); err != nil {
		s.flashAndRedirect(w, r, "error", "Could not delete the player.", "/admin/players")
		return
	}
	s.removeUpload(player.PhotoPath)
	s.flashAndRedirect(w, r, "success", "Player deleted.", "/admin/players")
}

func (s *Server) handleAdminStatSave(w http.ResponseWriter, r *http.Request) {
	playerID, ok := urlParamID(r, "playerID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, ok := s.store.GetPlayer(playerID); !ok {
		http.NotFound(w, r)
		return
	}
	stat := model.PlayerSeasonStat{
		PlayerID:    playerID,
		Season:      formText(r, "season"),
		Appearances: formInt(r, "appearances"),
		Tries:       formInt(r, "tries"),
		Points:      formInt(r, "points"),
	}
	editURL := playerEditURL(playerID)
	if stat.Season == "" {
		s.flashAndRedirect(w, r, "error", "Season is required.", editURL)
		return
	}
	if _, err := s.store.SaveStat(stat); err != nil {
		s.flashAndRedirect(w, r, "error", "Could not save the season record.", editURL)
		return
	}
	s.flashAndRedirect(w, r, "success", "Season record saved.", editURL)
}

func (s *Server) handleAdminStatDelete(w http.ResponseWriter, r *http.Request) {
	playerID, ok := urlParamID(r, "playerID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	statID, ok := urlParamID(r, "statID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	editURL := playerEditURL(playerID)
	if err := s.store.DeleteStat(statID); err != nil {
		s.flashAndRedirect(w, r, "error", "Could not delete the season record.", editURL)
		return
	}
	s.flashAndRedirect(w, r, "success", "Season record deleted.", editURL)
}

// savePhotoField stores an optional uploaded photo under the given
// subdirectory of the upload root. An empty return with nil error means no
// file was submitted.
func (s *Server) savePhotoField(r *http.Request, subdir string) (string, error) {
	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", upload.ErrTransport
	}
	defer file.Close()
	return upload.SavePhoto(file, header, filepath.Join(s.uploadDir, subdir))
}

func (s *Server) removeUpload(relPath string) {
	if err := upload.Remove(s.uploadDir, relPath); err != nil {
		s.logger.Error("upload cleanup failed", "path", relPath, "error", err)
	}
}

func playerEditURL(id int64) string {
	return "/admin/players/" + formatID(id) + "/edit"
}
