package models

import (
	"time"
)

// NameChange records one detected display-name transition. Rows are
// written by the reconciler and never updated.
type NameChange struct {
	ID         uint      `gorm:"primaryKey"`
	PlayerID   string    `gorm:"type:varchar(32);not null;index"`
	SnapshotID uint      `gorm:"not null;index"`
	OldName    string    `gorm:"type:varchar(255);not null"`
	NewName    string    `gorm:"type:varchar(255);not null"`
	DetectedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name
func (NameChange) TableName() string {
	return "name_changes"
}

// AllianceChange records one detected alliance transition. Nil tag
// pointers mean "no alliance", a genuine state distinct from any tag.
type AllianceChange struct {
	ID            uint      `gorm:"primaryKey"`
	PlayerID      string    `gorm:"type:varchar(32);not null;index"`
	SnapshotID    uint      `gorm:"not null;index"`
	OldTag        *string   `gorm:"type:varchar(16)"`
	NewTag        *string   `gorm:"type:varchar(16)"`
	OldAllianceID *string   `gorm:"type:varchar(32)"`
	NewAllianceID *string   `gorm:"type:varchar(32)"`
	DetectedAt    time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name
func (AllianceChange) TableName() string {
	return "alliance_changes"
}
