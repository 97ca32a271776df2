package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kavehz/realmstats/pkg/errors"
)

// ListSnapshots returns snapshots newest first, optionally filtered by
// the kingdom query parameter.
func (m *Manager) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	kingdom := r.URL.Query().Get("kingdom")

	snapshots, err := m.snapshots.List(kingdom, 100)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// GetSnapshotPlayers returns a page of one snapshot's rows.
func (m *Manager) GetSnapshotPlayers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeValidationFailed, "invalid snapshot id"))
		return
	}

	limit := queryInt(r, "limit", 100)
	if limit > 1000 {
		limit = 1000
	}
	offset := queryInt(r, "offset", 0)

	// 404 on unknown snapshots rather than an empty page
	if _, err := m.snapshots.GetByID(uint(id)); err != nil {
		writeError(w, err)
		return
	}

	facts, err := m.snapshots.GetPlayers(uint(id), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, facts)
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return defaultValue
}
