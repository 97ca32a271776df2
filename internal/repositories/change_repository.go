package repositories

import (
	"github.com/kavehz/realmstats/internal/models"
	"github.com/kavehz/realmstats/pkg/errors"
	"gorm.io/gorm"
)

type ChangeRepository struct {
	db *gorm.DB
}

func NewChangeRepository(db *gorm.DB) *ChangeRepository {
	return &ChangeRepository{db: db}
}

// ListNameChanges returns a player's name change events, newest first
func (r *ChangeRepository) ListNameChanges(playerID string) ([]models.NameChange, error) {
	var changes []models.NameChange
	result := r.db.
		Where("player_id = ?", playerID).
		Order("detected_at DESC").
		Find(&changes)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list name changes")
	}
	return changes, nil
}

// ListAllianceChanges returns a player's alliance transitions, newest first
func (r *ChangeRepository) ListAllianceChanges(playerID string) ([]models.AllianceChange, error) {
	var changes []models.AllianceChange
	result := r.db.
		Where("player_id = ?", playerID).
		Order("detected_at DESC").
		Find(&changes)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list alliance changes")
	}
	return changes, nil
}
