package repositories

import (
	"github.com/kavehz/realmstats/internal/models"
	"github.com/kavehz/realmstats/pkg/errors"
	"gorm.io/gorm"
)

type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByLordID retrieves a player identity by lord ID
func (r *PlayerRepository) GetByLordID(lordID string) (*models.Player, error) {
	var player models.Player
	result := r.db.Where("lord_id = ?", lordID).First(&player)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "player not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get player")
	}

	return &player, nil
}

// GetLatestSnapshot returns the player's most recent fact row, ordered
// by the owning snapshot's capture timestamp
func (r *PlayerRepository) GetLatestSnapshot(lordID string) (*models.PlayerSnapshot, error) {
	var fact models.PlayerSnapshot
	result := r.db.
		Joins("JOIN snapshots ON snapshots.id = player_snapshots.snapshot_id").
		Where("player_snapshots.player_id = ?", lordID).
		Order("snapshots.timestamp DESC").
		First(&fact)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "player has no snapshots")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get latest snapshot")
	}

	return &fact, nil
}

// GetHistory returns the player's full ledger, oldest first
func (r *PlayerRepository) GetHistory(lordID string) ([]models.PlayerSnapshot, error) {
	var facts []models.PlayerSnapshot
	result := r.db.
		Joins("JOIN snapshots ON snapshots.id = player_snapshots.snapshot_id").
		Where("player_snapshots.player_id = ?", lordID).
		Order("snapshots.timestamp ASC").
		Find(&facts)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get player history")
	}
	return facts, nil
}

// ListDeparted returns players currently flagged as having left the realm
func (r *PlayerRepository) ListDeparted(limit int) ([]models.Player, error) {
	var players []models.Player
	result := r.db.
		Where("has_left_realm = ?", true).
		Order("left_realm_at DESC").
		Limit(limit).
		Find(&players)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list departed players")
	}
	return players, nil
}
