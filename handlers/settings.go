package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/satheeshds/invoicer/models"
)

// GetSettings returns the owner's settings, creating defaults on first access
// @Summary      Get settings
// @Description  Get company, VAT, numbering and cap settings. Defaults are created on first access.
// @Tags         settings
// @Produce      json
// @Param        X-Owner-ID  header    string  true  "Owner"
// @Success      200         {object}  Response{data=models.Settings}
// @Router       /settings [get]
// @Security     BasicAuth
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.Settings.GetOrCreate(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// UpdateSettings applies a partial settings update
// @Summary      Update settings
// @Description  Apply the fields present in the body. Out of range values are clamped.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID  header    string                true  "Owner"
// @Param        settings    body      models.SettingsPatch  true  "Fields to change"
// @Success      200         {object}  Response{data=models.Settings}
// @Failure      400         {object}  Response{error=string}
// @Router       /settings [put]
// @Security     BasicAuth
func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	st, err := s.Settings.Update(r.Context(), ownerID(r), patch)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
