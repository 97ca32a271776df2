package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kavehz/realmstats/internal/config"
	"github.com/kavehz/realmstats/internal/ingest"
	"github.com/kavehz/realmstats/internal/middleware"
	"github.com/kavehz/realmstats/internal/repositories"
)

// Manager wires the HTTP surface: routes, auth and rate limiting.
type Manager struct {
	cfg       *config.Config
	ingestSvc *ingest.Service
	uploads   *repositories.UploadRepository
	players   *repositories.PlayerRepository
	snapshots *repositories.SnapshotRepository
	changes   *repositories.ChangeRepository
	seasons   *repositories.SeasonRepository

	auth    *middleware.Auth
	limiter *middleware.RateLimiter
}

func NewManager(cfg *config.Config, ingestSvc *ingest.Service,
	uploads *repositories.UploadRepository, players *repositories.PlayerRepository,
	snapshots *repositories.SnapshotRepository, changes *repositories.ChangeRepository,
	seasons *repositories.SeasonRepository) *Manager {
	return &Manager{
		cfg:       cfg,
		ingestSvc: ingestSvc,
		uploads:   uploads,
		players:   players,
		snapshots: snapshots,
		changes:   changes,
		seasons:   seasons,
		auth:      middleware.NewAuth(cfg.JWTSecret),
		limiter:   middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute),
	}
}

// NewRouter builds the API router. Uploads are admin-only; reads need
// any valid token.
func (m *Manager) NewRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(m.auth.Authenticate)
	api.Use(m.limiter.Limit)

	admin := api.NewRoute().Subrouter()
	admin.Use(m.auth.RequireAdmin)
	admin.HandleFunc("/uploads", m.HandleUpload).Methods(http.MethodPost)

	api.HandleFunc("/uploads", m.ListUploads).Methods(http.MethodGet)
	api.HandleFunc("/uploads/{id}", m.GetUpload).Methods(http.MethodGet)
	api.HandleFunc("/snapshots", m.ListSnapshots).Methods(http.MethodGet)
	api.HandleFunc("/snapshots/{id}/players", m.GetSnapshotPlayers).Methods(http.MethodGet)
	api.HandleFunc("/seasons", m.ListSeasons).Methods(http.MethodGet)
	// Literal route before the {lordId} pattern
	api.HandleFunc("/players/departed", m.ListDepartedPlayers).Methods(http.MethodGet)
	api.HandleFunc("/players/{lordId}", m.GetPlayer).Methods(http.MethodGet)
	api.HandleFunc("/players/{lordId}/history", m.GetPlayerHistory).Methods(http.MethodGet)
	api.HandleFunc("/players/{lordId}/changes", m.GetPlayerChanges).Methods(http.MethodGet)

	return router
}
