package repositories

import (
	"github.com/kavehz/realmstats/internal/models"
	"github.com/kavehz/realmstats/pkg/errors"
	"gorm.io/gorm"
)

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// GetByID retrieves a snapshot by ID
func (r *SnapshotRepository) GetByID(id uint) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	result := r.db.First(&snapshot, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "snapshot not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get snapshot")
	}

	return &snapshot, nil
}

// List returns snapshots newest first, optionally filtered by kingdom
func (r *SnapshotRepository) List(kingdom string, limit int) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	query := r.db.Order("timestamp DESC").Limit(limit)
	if kingdom != "" {
		query = query.Where("kingdom = ?", kingdom)
	}

	result := query.Find(&snapshots)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list snapshots")
	}
	return snapshots, nil
}

// GetLatest returns the most recent snapshot for a kingdom
func (r *SnapshotRepository) GetLatest(kingdom string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	result := r.db.
		Where("kingdom = ?", kingdom).
		Order("timestamp DESC").
		First(&snapshot)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "no snapshots for kingdom")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get latest snapshot")
	}

	return &snapshot, nil
}

// GetPlayers returns a page of the snapshot's fact rows
func (r *SnapshotRepository) GetPlayers(snapshotID uint, limit, offset int) ([]models.PlayerSnapshot, error) {
	var facts []models.PlayerSnapshot
	result := r.db.
		Where("snapshot_id = ?", snapshotID).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&facts)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get snapshot players")
	}
	return facts, nil
}

// ListKingdoms returns every kingdom that has at least one snapshot
func (r *SnapshotRepository) ListKingdoms() ([]string, error) {
	var kingdoms []string
	result := r.db.Model(&models.Snapshot{}).Distinct("kingdom").Pluck("kingdom", &kingdoms)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list kingdoms")
	}
	return kingdoms, nil
}
