package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kavehz/realmstats/internal/models"
)

type playerResponse struct {
	Player *models.Player         `json:"player"`
	Latest *models.PlayerSnapshot `json:"latest,omitempty"`
}

type playerChangesResponse struct {
	NameChanges     []models.NameChange     `json:"name_changes"`
	AllianceChanges []models.AllianceChange `json:"alliance_changes"`
}

// ListDepartedPlayers returns players currently flagged as having left
// the realm, most recent departure first.
func (m *Manager) ListDepartedPlayers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	if limit > 1000 {
		limit = 1000
	}

	players, err := m.players.ListDeparted(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// GetPlayer returns a player's identity record plus their latest
// snapshot row.
func (m *Manager) GetPlayer(w http.ResponseWriter, r *http.Request) {
	lordID := mux.Vars(r)["lordId"]

	player, err := m.players.GetByLordID(lordID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := playerResponse{Player: player}
	if latest, err := m.players.GetLatestSnapshot(lordID); err == nil {
		resp.Latest = latest
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetPlayerHistory returns the player's full ledger, oldest first.
func (m *Manager) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	lordID := mux.Vars(r)["lordId"]

	if _, err := m.players.GetByLordID(lordID); err != nil {
		writeError(w, err)
		return
	}

	history, err := m.players.GetHistory(lordID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// GetPlayerChanges returns the player's name and alliance change events.
func (m *Manager) GetPlayerChanges(w http.ResponseWriter, r *http.Request) {
	lordID := mux.Vars(r)["lordId"]

	if _, err := m.players.GetByLordID(lordID); err != nil {
		writeError(w, err)
		return
	}

	names, err := m.changes.ListNameChanges(lordID)
	if err != nil {
		writeError(w, err)
		return
	}
	alliances, err := m.changes.ListAllianceChanges(lordID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, playerChangesResponse{
		NameChanges:     names,
		AllianceChanges: alliances,
	})
}
