package handlers

import "net/http"

// ListSeasons returns all seasons, newest first.
func (m *Manager) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := m.seasons.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}
