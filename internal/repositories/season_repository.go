package repositories

import (
	"time"

	"github.com/kavehz/realmstats/internal/models"
	"github.com/kavehz/realmstats/pkg/errors"
	"gorm.io/gorm"
)

type SeasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

// FindByTimestamp returns the season whose window contains ts, or nil
// when the timestamp falls outside every season
func (r *SeasonRepository) FindByTimestamp(ts time.Time) (*models.Season, error) {
	var season models.Season
	result := r.db.
		Where("starts_at <= ? AND ends_at > ?", ts, ts).
		Order("starts_at DESC").
		First(&season)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to find season")
	}

	return &season, nil
}

// List returns all seasons, newest first
func (r *SeasonRepository) List() ([]models.Season, error) {
	var seasons []models.Season
	result := r.db.Order("starts_at DESC").Find(&seasons)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list seasons")
	}
	return seasons, nil
}
