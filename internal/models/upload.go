package models

import (
	"time"

	"gorm.io/gorm"
)

// Upload tracks one ingestion attempt end to end. A failed upload keeps
// the captured error message for operator diagnosis.
type Upload struct {
	ID         uint   `gorm:"primaryKey"`
	PublicID   string `gorm:"uniqueIndex;type:varchar(12)"`
	Filename   string `gorm:"type:varchar(255);not null"`
	Kingdom    string `gorm:"type:varchar(16);index"`
	Status     string `gorm:"type:varchar(20);default:'pending';not null"`
	Error      string `gorm:"type:text"`
	SnapshotID *uint
	RowCount   int       `gorm:"default:0;not null"`
	UploadedBy string    `gorm:"type:varchar(128)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Upload status constants
const (
	UploadStatusPending    = "pending"
	UploadStatusProcessing = "processing"
	UploadStatusCompleted  = "completed"
	UploadStatusFailed     = "failed"
)

// BeforeSave hook for validation
func (u *Upload) BeforeSave(tx *gorm.DB) error {
	validStatuses := map[string]bool{
		UploadStatusPending:    true,
		UploadStatusProcessing: true,
		UploadStatusCompleted:  true,
		UploadStatusFailed:     true,
	}
	if !validStatuses[u.Status] {
		return gorm.ErrInvalidData
	}
	return nil
}

// TableName specifies the table name
func (Upload) TableName() string {
	return "uploads"
}
