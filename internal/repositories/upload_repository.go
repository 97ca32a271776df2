package repositories

import (
	"github.com/kavehz/realmstats/internal/models"
	"github.com/kavehz/realmstats/pkg/errors"
	"gorm.io/gorm"
)

type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create creates a new upload record
func (r *UploadRepository) Create(upload *models.Upload) error {
	result := r.db.Create(upload)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to create upload")
	}
	return nil
}

// Update persists upload state transitions
func (r *UploadRepository) Update(upload *models.Upload) error {
	result := r.db.Save(upload)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update upload")
	}
	return nil
}

// GetByPublicID retrieves an upload by its public ID
func (r *UploadRepository) GetByPublicID(publicID string) (*models.Upload, error) {
	var upload models.Upload
	result := r.db.Where("public_id = ?", publicID).First(&upload)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "upload not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get upload")
	}

	return &upload, nil
}

// ListRecent returns the most recent uploads, newest first
func (r *UploadRepository) ListRecent(limit int) ([]models.Upload, error) {
	var uploads []models.Upload
	result := r.db.Order("created_at DESC").Limit(limit).Find(&uploads)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list uploads")
	}
	return uploads, nil
}
