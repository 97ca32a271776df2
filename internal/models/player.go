package models

import (
	"time"

	"gorm.io/gorm"
)

// Player is the long-lived identity record for one lord id. It is the
// only mutable row the ingestion pipeline touches; everything else is
// append-only.
type Player struct {
	LordID       string     `gorm:"primaryKey;type:varchar(32)"`
	CurrentName  string     `gorm:"type:varchar(255);not null"`
	LastSeenAt   *time.Time `gorm:"index"`
	HasLeftRealm bool       `gorm:"default:false;not null;index"`
	LeftRealmAt  *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate hook for validation. Runs on inserts only: departure
// marking updates players through column maps, where the model value is
// empty and save-time checks would reject every update.
func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.LordID == "" {
		return gorm.ErrInvalidData
	}
	// A departed player must carry the departure instant
	if p.HasLeftRealm && p.LeftRealmAt == nil {
		return gorm.ErrInvalidData
	}
	return nil
}

// TableName specifies the table name
func (Player) TableName() string {
	return "players"
}
